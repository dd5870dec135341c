package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/modshield/modshield/pkg/cache"
	"github.com/modshield/modshield/pkg/config"
	handlers "github.com/modshield/modshield/pkg/handlers/http"
	"github.com/modshield/modshield/pkg/infra/arbiter"
	"github.com/modshield/modshield/pkg/infra/contentsafety"
	"github.com/modshield/modshield/pkg/infra/httpx"
	infraLogger "github.com/modshield/modshield/pkg/infra/logger"
	"github.com/modshield/modshield/pkg/infra/telemetry"
	"github.com/modshield/modshield/pkg/infra/telemetry/kafka"
	"github.com/modshield/modshield/pkg/moderation"
	"github.com/modshield/modshield/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := infraLogger.NewLogger(cfg.Log.Level)

	strictThreshold, err := moderation.ParseThreshold(cfg.Pipeline.StrictThreshold)
	if err != nil {
		logger.WithError(err).Fatal("invalid strict threshold")
	}
	looseThreshold, err := moderation.ParseThreshold(cfg.Pipeline.LooseThreshold)
	if err != nil {
		logger.WithError(err).Fatal("invalid loose threshold")
	}
	if strictThreshold > looseThreshold {
		logger.Fatal("strict threshold must not be looser than the loose threshold")
	}

	httpClient := httpx.NewFastHTTPClient(httpx.FastHTTPClientConfig{
		Timeout:   time.Duration(cfg.ContentSafety.TimeoutSeconds) * time.Second,
		UserAgent: "modshield",
	})
	breaker := httpx.NewCircuitBreaker("content_safety", 30*time.Second, 5)

	csClient := contentsafety.NewClient(contentsafety.Config{
		Endpoint:   cfg.ContentSafety.Endpoint,
		APIKey:     cfg.ContentSafety.APIKey,
		APIVersion: cfg.ContentSafety.APIVersion,
	}, httpClient, breaker, logger)

	judge := arbiter.NewChatJudge(arbiter.Config{
		BaseURL: cfg.Arbiter.BaseURL,
		APIKey:  cfg.Arbiter.APIKey,
		Model:   cfg.Arbiter.Model,
	}, httpClient, logger)

	var strict moderation.Classifier = moderation.NewSeverityClassifier(csClient, strictThreshold)
	var loose moderation.Classifier = moderation.NewSeverityClassifier(csClient, looseThreshold)

	var verdictCache *cache.VerdictCache
	if cfg.Redis.Enabled {
		verdictCache = cache.NewVerdictCache(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.TTLSeconds) * time.Second,
		}, logger)
		strict = cache.NewCachedClassifier("strict", strict, verdictCache)
		loose = cache.NewCachedClassifier("loose", loose, verdictCache)
	}

	pipeline := moderation.NewPipeline(
		strict,
		loose,
		judge,
		moderation.NewExclusionListWriter(csClient),
		cfg.Pipeline.ExclusionList,
		logger,
	)

	var exporter telemetry.Exporter = telemetry.NoopExporter{}
	if cfg.Telemetry.Exporter == kafka.ExporterName {
		exporter, err = kafka.NewExporter(cfg.Telemetry.Settings)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize kafka exporter")
		}
	}

	transport := handlers.HandlerTransport{
		EvaluateHandler:          handlers.NewEvaluateHandler(logger, pipeline, exporter),
		AnalyzeTextHandler:       handlers.NewAnalyzeTextHandler(logger, csClient),
		AnalyzeImageHandler:      handlers.NewAnalyzeImageHandler(logger, csClient),
		ShieldPromptHandler:      handlers.NewShieldPromptHandler(logger, csClient),
		GroundednessHandler:      handlers.NewGroundednessHandler(logger, csClient),
		CreateBlocklistHandler:   handlers.NewCreateBlocklistHandler(logger, csClient),
		AddBlocklistItemsHandler: handlers.NewAddBlocklistItemsHandler(logger, csClient),
	}

	srv := server.New(cfg, logger, transport)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
		exporter.Close()
		if verdictCache != nil {
			if err := verdictCache.Close(); err != nil {
				logger.WithError(err).Error("failed to close verdict cache")
			}
		}
	}()

	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
