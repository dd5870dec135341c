package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type groundednessHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewGroundednessHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &groundednessHandler{
		logger: logger,
		client: client,
	}
}

type groundednessRequest struct {
	Domain           string   `json:"domain"`
	Task             string   `json:"task"`
	Text             string   `json:"text"`
	GroundingSources []string `json:"grounding_sources"`
	Query            string   `json:"query"`
	Reasoning        bool     `json:"reasoning"`

	AzureOpenAIEndpoint   string `json:"azure_openai_endpoint"`
	AzureOpenAIDeployment string `json:"azure_openai_deployment"`
}

// Handle @Summary Check whether a completion is grounded in its sources
// @Description Detects ungrounded spans in a text against the provided grounding sources; reasoning requires an LLM resource
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} contentsafety.GroundednessResponse "Groundedness result"
// @Failure 400 {object} map[string]interface{} "Missing text or sources"
// @Failure 502 {object} map[string]interface{} "Detection service unavailable"
// @Router /api/v1/groundedness [post]
func (h *groundednessHandler) Handle(c *fiber.Ctx) error {
	var req groundednessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	if len(req.GroundingSources) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "grounding_sources is required"})
	}
	if req.Reasoning && (req.AzureOpenAIEndpoint == "" || req.AzureOpenAIDeployment == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reasoning requires an LLM resource"})
	}

	csReq := contentsafety.GroundednessRequest{
		Domain:           req.Domain,
		Task:             req.Task,
		Text:             req.Text,
		GroundingSources: req.GroundingSources,
		Reasoning:        req.Reasoning,
	}
	if req.Query != "" {
		csReq.QnA = &contentsafety.QnAOptions{Query: req.Query}
	}
	if req.Reasoning {
		csReq.LLMResource = &contentsafety.LLMResource{
			ResourceType:              "AzureOpenAI",
			AzureOpenAIEndpoint:       req.AzureOpenAIEndpoint,
			AzureOpenAIDeploymentName: req.AzureOpenAIDeployment,
		}
	}

	resp, err := h.client.DetectGroundedness(c.UserContext(), csReq)
	if err != nil {
		h.logger.WithError(err).Error("groundedness detection failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
