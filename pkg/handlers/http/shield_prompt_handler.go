package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type shieldPromptHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewShieldPromptHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &shieldPromptHandler{
		logger: logger,
		client: client,
	}
}

type shieldPromptRequest struct {
	UserPrompt string   `json:"user_prompt"`
	Documents  []string `json:"documents"`
}

// Handle @Summary Check a prompt and documents for injection attacks
// @Description Runs the prompt shield over a user prompt and optional attached documents
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} contentsafety.ShieldPromptResponse "Shield result"
// @Failure 400 {object} map[string]interface{} "Missing prompt"
// @Failure 502 {object} map[string]interface{} "Shield service unavailable"
// @Router /api/v1/shield [post]
func (h *shieldPromptHandler) Handle(c *fiber.Ctx) error {
	var req shieldPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.UserPrompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_prompt is required"})
	}

	resp, err := h.client.ShieldPrompt(c.UserContext(), req.UserPrompt, req.Documents)
	if err != nil {
		h.logger.WithError(err).Error("prompt shield failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
