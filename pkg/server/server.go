package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/modshield/modshield/pkg/config"
	handlers "github.com/modshield/modshield/pkg/handlers/http"
	"github.com/modshield/modshield/pkg/infra/metrics"
	"github.com/modshield/modshield/pkg/server/middleware"
)

// Server hosts the moderation API plus an optional metrics listener.
type Server struct {
	cfg        *config.Config
	logger     *logrus.Logger
	app        *fiber.App
	metricsApp *fiber.App
}

func New(cfg *config.Config, logger *logrus.Logger, transport handlers.HandlerTransport) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logging(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api/v1")
	api.Post("/evaluate", transport.EvaluateHandler.Handle)
	api.Post("/analyze/text", transport.AnalyzeTextHandler.Handle)
	api.Post("/analyze/image", transport.AnalyzeImageHandler.Handle)
	api.Post("/shield", transport.ShieldPromptHandler.Handle)
	api.Post("/groundedness", transport.GroundednessHandler.Handle)
	api.Put("/blocklists/:name", transport.CreateBlocklistHandler.Handle)
	api.Post("/blocklists/:name/items", transport.AddBlocklistItemsHandler.Handle)

	return &Server{
		cfg:    cfg,
		logger: logger,
		app:    app,
	}
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	if s.cfg.Metrics.Enabled {
		s.startMetricsListener()
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.WithField("addr", addr).Info("moderation server listening")
	return s.app.Listen(addr)
}

func (s *Server) startMetricsListener() {
	s.metricsApp = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	metricsHandler := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	s.metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(metricsHandler)(c.Context())
		return nil
	})

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.MetricsPort)
	go func() {
		s.logger.WithField("addr", addr).Info("metrics listener started")
		if err := s.metricsApp.Listen(addr); err != nil {
			s.logger.WithError(err).Error("metrics listener stopped")
		}
	}()
}

func (s *Server) Shutdown() error {
	if s.metricsApp != nil {
		if err := s.metricsApp.Shutdown(); err != nil {
			s.logger.WithError(err).Error("failed to stop metrics listener")
		}
	}
	return s.app.Shutdown()
}
