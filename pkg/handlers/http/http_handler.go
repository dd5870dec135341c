package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Pipeline
	EvaluateHandler Handler

	// One-shot analysis
	AnalyzeTextHandler  Handler
	AnalyzeImageHandler Handler
	ShieldPromptHandler Handler
	GroundednessHandler Handler

	// Blocklists
	CreateBlocklistHandler   Handler
	AddBlocklistItemsHandler Handler
}
