package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/modshield/modshield/pkg/infra/contentsafety"
)

type addBlocklistItemsHandler struct {
	logger *logrus.Logger
	client *contentsafety.Client
}

func NewAddBlocklistItemsHandler(logger *logrus.Logger, client *contentsafety.Client) Handler {
	return &addBlocklistItemsHandler{
		logger: logger,
		client: client,
	}
}

type addBlocklistItemsRequest struct {
	Items []struct {
		Text        string `json:"text"`
		Description string `json:"description"`
	} `json:"items"`
}

// Handle @Summary Upsert items into a named blocklist
// @Description Re-adding an existing text is not an error; the list keeps one entry per text
// @Tags Blocklists
// @Accept json
// @Produce json
// @Param name path string true "Blocklist name"
// @Success 200 {object} contentsafety.AddOrUpdateItemsResponse "Upserted items"
// @Failure 400 {object} map[string]interface{} "Missing name or items"
// @Failure 502 {object} map[string]interface{} "Blocklist service unavailable"
// @Router /api/v1/blocklists/{name}/items [post]
func (h *addBlocklistItemsHandler) Handle(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "blocklist name is required"})
	}

	var req addBlocklistItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "items is required"})
	}

	items := make([]contentsafety.BlocklistItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "every item needs a text"})
		}
		items = append(items, contentsafety.BlocklistItem{
			Text:        item.Text,
			Description: item.Description,
		})
	}

	resp, err := h.client.AddOrUpdateItems(c.UserContext(), name, items)
	if err != nil {
		h.logger.WithError(err).WithField("blocklist", name).Error("blocklist item upsert failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
