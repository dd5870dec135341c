package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type analyzeTextHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewAnalyzeTextHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &analyzeTextHandler{
		logger: logger,
		client: client,
	}
}

type analyzeTextRequest struct {
	Text               string   `json:"text"`
	Categories         []string `json:"categories"`
	BlocklistNames     []string `json:"blocklist_names"`
	HaltOnBlocklistHit bool     `json:"halt_on_blocklist_hit"`
	OutputType         string   `json:"output_type"`
}

// Handle @Summary Analyze a text for harm categories
// @Description Returns per-category severity scores and blocklist matches
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} contentsafety.AnalyzeTextResponse "Analysis result"
// @Failure 400 {object} map[string]interface{} "Missing or invalid text"
// @Failure 502 {object} map[string]interface{} "Analysis service unavailable"
// @Router /api/v1/analyze/text [post]
func (h *analyzeTextHandler) Handle(c *fiber.Ctx) error {
	var req analyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}

	resp, err := h.client.AnalyzeText(c.UserContext(), contentsafety.AnalyzeTextRequest{
		Text:               req.Text,
		Categories:         req.Categories,
		BlocklistNames:     req.BlocklistNames,
		HaltOnBlocklistHit: req.HaltOnBlocklistHit,
		OutputType:         req.OutputType,
	})
	if err != nil {
		h.logger.WithError(err).Error("text analysis failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
