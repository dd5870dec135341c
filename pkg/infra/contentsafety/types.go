package contentsafety

// Categories the service scores by default. The set is open; callers may
// request any subset the service understands.
var DefaultCategories = []string{"Hate", "SelfHarm", "Sexual", "Violence"}

const (
	OutputFourSeverityLevels  = "FourSeverityLevels"
	OutputEightSeverityLevels = "EightSeverityLevels"
)

type AnalyzeTextRequest struct {
	Text               string   `json:"text"`
	Categories         []string `json:"categories,omitempty"`
	BlocklistNames     []string `json:"blocklistNames,omitempty"`
	HaltOnBlocklistHit bool     `json:"haltOnBlocklistHit,omitempty"`
	OutputType         string   `json:"outputType,omitempty"`
}

type CategoryAnalysis struct {
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

type BlocklistMatch struct {
	BlocklistName     string `json:"blocklistName"`
	BlocklistItemID   string `json:"blocklistItemId"`
	BlocklistItemText string `json:"blocklistItemText"`
}

type AnalyzeTextResponse struct {
	BlocklistsMatch    []BlocklistMatch   `json:"blocklistsMatch"`
	CategoriesAnalysis []CategoryAnalysis `json:"categoriesAnalysis"`
}

type ImageData struct {
	// Content is the base64-encoded image payload.
	Content string `json:"content"`
}

type AnalyzeImageRequest struct {
	Image      ImageData `json:"image"`
	Categories []string  `json:"categories,omitempty"`
	OutputType string    `json:"outputType,omitempty"`
}

type AnalyzeImageResponse struct {
	CategoriesAnalysis []CategoryAnalysis `json:"categoriesAnalysis"`
}

type ShieldPromptRequest struct {
	UserPrompt string   `json:"userPrompt"`
	Documents  []string `json:"documents"`
}

type AttackAnalysis struct {
	AttackDetected bool `json:"attackDetected"`
}

type ShieldPromptResponse struct {
	UserPromptAnalysis AttackAnalysis   `json:"userPromptAnalysis"`
	DocumentsAnalysis  []AttackAnalysis `json:"documentsAnalysis"`
}

type QnAOptions struct {
	Query string `json:"query"`
}

type LLMResource struct {
	ResourceType              string `json:"resourceType"`
	AzureOpenAIEndpoint       string `json:"azureOpenAIEndpoint"`
	AzureOpenAIDeploymentName string `json:"azureOpenAIDeploymentName"`
}

type GroundednessRequest struct {
	Domain           string       `json:"domain,omitempty"`
	Task             string       `json:"task,omitempty"`
	Text             string       `json:"text"`
	GroundingSources []string     `json:"groundingSources"`
	QnA              *QnAOptions  `json:"qna,omitempty"`
	Reasoning        bool         `json:"reasoning,omitempty"`
	LLMResource      *LLMResource `json:"llmResource,omitempty"`
}

type UngroundedDetail struct {
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

type GroundednessResponse struct {
	UngroundedDetected   bool               `json:"ungroundedDetected"`
	UngroundedPercentage float64            `json:"ungroundedPercentage"`
	UngroundedDetails    []UngroundedDetail `json:"ungroundedDetails"`
}

type BlocklistItem struct {
	Description string `json:"description,omitempty"`
	Text        string `json:"text"`
}

type Blocklist struct {
	BlocklistName string `json:"blocklistName"`
	Description   string `json:"description,omitempty"`
}

type addOrUpdateItemsRequest struct {
	BlocklistItems []BlocklistItem `json:"blocklistItems"`
}

type AddOrUpdateItemsResponse struct {
	BlocklistItems []struct {
		BlocklistItemID string `json:"blocklistItemId"`
		Description     string `json:"description"`
		Text            string `json:"text"`
	} `json:"blocklistItems"`
}
