package contentsafety

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/httpx"
	"github.com/modshield/modshield/pkg/infra/metrics"
)

const (
	DefaultAPIVersion = "2024-09-01"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// ServiceError is a non-2xx reply carrying the service's own error payload.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("content safety service error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Config struct {
	Endpoint   string
	APIKey     string
	APIVersion string
}

// Client talks to the remote content-safety service. All calls go through
// the injected transport and the shared circuit breaker; a tripped breaker
// surfaces as a plain error so callers apply their own failure policy.
type Client struct {
	cfg     Config
	http    httpx.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
}

func NewClient(cfg Config, http httpx.Client, breaker httpx.CircuitBreaker, logger *logrus.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	return &Client{
		cfg:     cfg,
		http:    http,
		breaker: breaker,
		logger:  logger,
	}
}

// AnalyzeText scores a text against the requested harm categories.
func (c *Client) AnalyzeText(ctx context.Context, req AnalyzeTextRequest) (*AnalyzeTextResponse, error) {
	if len(req.Categories) == 0 {
		req.Categories = DefaultCategories
	}
	if req.OutputType == "" {
		req.OutputType = OutputFourSeverityLevels
	}

	var out AnalyzeTextResponse
	if err := c.post(ctx, "text:analyze", "analyze_text", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeImage scores a base64-encoded image.
func (c *Client) AnalyzeImage(ctx context.Context, req AnalyzeImageRequest) (*AnalyzeImageResponse, error) {
	if req.OutputType == "" {
		req.OutputType = OutputFourSeverityLevels
	}

	var out AnalyzeImageResponse
	if err := c.post(ctx, "image:analyze", "analyze_image", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShieldPrompt checks a user prompt and attached documents for injection
// attacks.
func (c *Client) ShieldPrompt(ctx context.Context, userPrompt string, documents []string) (*ShieldPromptResponse, error) {
	req := ShieldPromptRequest{
		UserPrompt: userPrompt,
		Documents:  documents,
	}
	if req.Documents == nil {
		req.Documents = []string{}
	}

	var out ShieldPromptResponse
	if err := c.post(ctx, "text:shieldPrompt", "shield_prompt", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetectGroundedness checks whether a completion is grounded in its sources.
func (c *Client) DetectGroundedness(ctx context.Context, req GroundednessRequest) (*GroundednessResponse, error) {
	var out GroundednessResponse
	if err := c.post(ctx, "text:detectGroundedness", "detect_groundedness", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) operationURL(operation string) string {
	return fmt.Sprintf("%s/contentsafety/%s?api-version=%s",
		c.cfg.Endpoint, operation, url.QueryEscape(c.cfg.APIVersion))
}

func (c *Client) post(ctx context.Context, operation, metricName string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, c.operationURL(operation), metricName, in, out)
}

func (c *Client) do(ctx context.Context, method, rawURL, metricName string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyHeader, c.cfg.APIKey)

	started := time.Now()
	var body []byte
	var statusCode int

	err = c.breaker.Execute(func() error {
		resp, doErr := c.http.Do(req)
		if doErr != nil {
			return doErr
		}
		defer resp.Body.Close()

		statusCode = resp.StatusCode
		body, doErr = httpx.DecodeBody(resp)
		if doErr != nil {
			return doErr
		}
		if statusCode < 200 || statusCode >= 300 {
			return serviceErrorFromBody(statusCode, body)
		}
		return nil
	})

	metrics.RemoteCallLatency.WithLabelValues("content_safety", metricName).
		Observe(float64(time.Since(started).Milliseconds()))

	if err != nil {
		metrics.RemoteCallErrors.WithLabelValues("content_safety", metricName).Inc()
		c.logger.WithError(err).WithFields(logrus.Fields{
			"operation": metricName,
			"status":    statusCode,
		}).Error("content safety call failed")
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", metricName, err)
		}
	}
	return nil
}

func serviceErrorFromBody(statusCode int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return &ServiceError{
			StatusCode: statusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}
	return &ServiceError{
		StatusCode: statusCode,
		Code:       "Unknown",
		Message:    string(body),
	}
}
