package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/rainy-day/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/rainy-day/internal/adapter/kafka"
	"github.com/couchcryptid/rainy-day/internal/adapter/openweather"
	"github.com/couchcryptid/rainy-day/internal/advisor"
	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Weather lookup (feature-flagged via OPENWEATHER_ENABLED / OPENWEATHER_API_KEY).
	var weather domain.WeatherProvider
	if cfg.WeatherEnabled {
		weather = openweather.NewFromConfig(cfg, metrics, logger)
		metrics.WeatherEnabled.Set(1)
		logger.Info("weather lookup enabled",
			"cache_size", cfg.WeatherCacheSize,
			"cache_ttl", cfg.WeatherCacheTTL,
			"timeout", cfg.WeatherTimeout,
		)
	} else {
		logger.Info("weather lookup disabled")
	}

	// Assessment publishing (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var (
		publisher advisor.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("assessment publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	adv := advisor.New(weather, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, adv, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()
	adv.MarkReady()

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
