package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"

	"github.com/modshield/modshield/pkg/infra/telemetry"
	"github.com/modshield/modshield/pkg/moderation"
)

type evaluateHandler struct {
	logger   *logrus.Logger
	pipeline *moderation.Pipeline
	exporter telemetry.Exporter
}

func NewEvaluateHandler(logger *logrus.Logger, pipeline *moderation.Pipeline, exporter telemetry.Exporter) Handler {
	return &evaluateHandler{
		logger:   logger,
		pipeline: pipeline,
		exporter: exporter,
	}
}

type evaluateResponse struct {
	Content    string `json:"content"`
	Suppressed bool   `json:"suppressed"`
	Category   string `json:"category,omitempty"`
}

// Handle @Summary Evaluate content through the moderation cascade
// @Description Runs the strict filter, loose filter and arbiter; harmful content is suppressed and registered in the exclusion list
// @Tags Moderation
// @Accept json
// @Produce json
// @Success 200 {object} evaluateResponse "Evaluation outcome"
// @Failure 400 {object} map[string]interface{} "Missing or invalid text"
// @Failure 502 {object} map[string]interface{} "Classifier or exclusion list unavailable"
// @Router /api/v1/evaluate [post]
func (h *evaluateHandler) Handle(c *fiber.Ctx) error {
	parsed, err := fastjson.ParseBytes(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	text := string(parsed.GetStringBytes("text"))
	if text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	outcome, err := h.pipeline.Evaluate(c.UserContext(), text)
	if err != nil {
		h.logger.WithError(err).Error("evaluation failed")
		if errors.Is(err, moderation.ErrClassifierUnavailable) || errors.Is(err, moderation.ErrExclusionListWriteFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.emit(c, outcome)

	return c.Status(fiber.StatusOK).JSON(evaluateResponse{
		Content:    outcome.Content,
		Suppressed: outcome.Suppressed,
		Category:   outcome.Category,
	})
}

func (h *evaluateHandler) emit(c *fiber.Ctx, outcome *moderation.Outcome) {
	verdict := "passed"
	if outcome.Suppressed {
		verdict = "suppressed"
	}
	evt := &telemetry.DecisionEvent{
		RequestID:  requestID(c),
		Verdict:    verdict,
		Category:   outcome.Category,
		Suppressed: outcome.Suppressed,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.exporter.Handle(c.UserContext(), evt); err != nil {
		h.logger.WithError(err).Warn("failed to export decision event")
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok {
		return id
	}
	return ""
}
