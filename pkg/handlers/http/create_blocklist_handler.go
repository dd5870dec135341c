package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type createBlocklistHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewCreateBlocklistHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &createBlocklistHandler{
		logger: logger,
		client: client,
	}
}

type createBlocklistRequest struct {
	Description string `json:"description"`
}

// Handle @Summary Create or update a named blocklist
// @Description Idempotent: creating an existing list only updates its description
// @Tags Blocklists
// @Accept json
// @Produce json
// @Param name path string true "Blocklist name"
// @Success 200 {object} contentsafety.Blocklist "Blocklist"
// @Failure 400 {object} map[string]interface{} "Missing name"
// @Failure 502 {object} map[string]interface{} "Blocklist service unavailable"
// @Router /api/v1/blocklists/{name} [put]
func (h *createBlocklistHandler) Handle(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "blocklist name is required"})
	}

	var req createBlocklistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	resp, err := h.client.CreateOrUpdateBlocklist(c.UserContext(), name, req.Description)
	if err != nil {
		h.logger.WithError(err).WithField("blocklist", name).Error("blocklist creation failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
