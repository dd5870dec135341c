package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type analyzeImageHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewAnalyzeImageHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &analyzeImageHandler{
		logger: logger,
		client: client,
	}
}

type analyzeImageRequest struct {
	// Image is the base64-encoded image payload.
	Image      string   `json:"image"`
	Categories []string `json:"categories"`
	OutputType string   `json:"output_type"`
}

// Handle @Summary Analyze an image for harm categories
// @Description Returns per-category severity scores for a base64-encoded image
// @Tags Analysis
// @Accept json
// @Produce json
// @Success 200 {object} contentsafety.AnalyzeImageResponse "Analysis result"
// @Failure 400 {object} map[string]interface{} "Missing or invalid image"
// @Failure 502 {object} map[string]interface{} "Analysis service unavailable"
// @Router /api/v1/analyze/image [post]
func (h *analyzeImageHandler) Handle(c *fiber.Ctx) error {
	var req analyzeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if req.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
	}

	resp, err := h.client.AnalyzeImage(c.UserContext(), contentsafety.AnalyzeImageRequest{
		Image:      contentsafety.ImageData{Content: req.Image},
		Categories: req.Categories,
		OutputType: req.OutputType,
	})
	if err != nil {
		h.logger.WithError(err).Error("image analysis failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
