package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	anthropicadapter "github.com/couchcryptid/urbanshade-service/internal/adapter/anthropic"
	httpadapter "github.com/couchcryptid/urbanshade-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/urbanshade-service/internal/adapter/kafka"
	"github.com/couchcryptid/urbanshade-service/internal/adapter/mapbox"
	"github.com/couchcryptid/urbanshade-service/internal/assistant"
	"github.com/couchcryptid/urbanshade-service/internal/cache"
	"github.com/couchcryptid/urbanshade-service/internal/config"
	"github.com/couchcryptid/urbanshade-service/internal/domain"
	"github.com/couchcryptid/urbanshade-service/internal/observability"
	"github.com/couchcryptid/urbanshade-service/internal/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var (
		publisher planner.RecordPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("simulation publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSimulationTopic)
	}

	var llm assistant.LLM
	if cfg.AssistantEnabled() {
		llm = anthropicadapter.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens)
		logger.Info("assistant llm enabled", "model", cfg.AnthropicModel)
	} else {
		logger.Info("assistant llm disabled, serving simulated answers")
	}

	p := planner.New(planner.Options{
		Width:         cfg.GridWidth,
		Height:        cfg.GridHeight,
		Seed:          cfg.HeatmapSeed,
		AnalysisDelay: cfg.AnalysisDelay,
		GeocodeRegion: cfg.GeocodeRegion,
	}, cache.New[string, domain.HeatGrid](cfg.GridCacheSize), publisher, geocoder, logger, metrics)

	a := assistant.New(llm, nil, nil, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, a, cfg.CORSAllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Pre-generate base grids; /readyz reports 503 until this finishes.
	go func() {
		if err := p.Warm(ctx); err != nil {
			logger.Error("grid warmup failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
