package arbiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/httpx"
	"github.com/modshield/modshield/pkg/infra/metrics"
)

// The judge model is instructed to answer with one of two literal labels.
// Only an exact "Harmfull" reply counts as a harmful verdict; anything else,
// including an empty completion, reads as safe. The misspelling is the label
// the model contract was written against, so it stays.
const (
	systemPrompt = "You are a evaluation assistant.\n" +
		"Check the content below and provide feedback if it is harmfull or not.\n" +
		"**Answer only 'Harmfull' or 'Not Harmfull'**."

	harmfulLabel = "Harmfull"

	maxTokens   = 15
	temperature = 0.1
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// ChatJudge asks an OpenAI-compatible chat-completions endpoint for a binary
// harmfulness call on a text.
type ChatJudge struct {
	client openai.Client
	model  string
	logger *logrus.Logger
}

func NewChatJudge(cfg Config, httpClient httpx.Client, logger *logrus.Logger) *ChatJudge {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &ChatJudge{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		logger: logger,
	}
}

// Judge returns true when the content is judged safe, false when harmful.
// Errors are returned as-is; the caller owns the failure policy.
func (j *ChatJudge) Judge(ctx context.Context, content string) (bool, error) {
	params := openai.ChatCompletionNewParams{
		Model: j.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(content),
		},
	}
	params.MaxTokens = openai.Int(maxTokens)
	params.Temperature = openai.Float(temperature)

	started := time.Now()
	resp, err := j.client.Chat.Completions.New(ctx, params)
	metrics.RemoteCallLatency.WithLabelValues("arbiter", "judge").
		Observe(float64(time.Since(started).Milliseconds()))

	if err != nil {
		metrics.RemoteCallErrors.WithLabelValues("arbiter", "judge").Inc()
		return false, fmt.Errorf("arbiter request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		j.logger.Warn("arbiter returned no choices, treating content as safe")
		return true, nil
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	j.logger.WithField("answer", answer).Debug("arbiter verdict received")

	return answer != harmfulLabel, nil
}
