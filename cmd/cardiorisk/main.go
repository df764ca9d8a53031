package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/CardioRisk/internal/api"
	"github.com/MikeSquared-Agency/CardioRisk/internal/assessment"
	"github.com/MikeSquared-Agency/CardioRisk/internal/classifier"
	"github.com/MikeSquared-Agency/CardioRisk/internal/config"
	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
	"github.com/MikeSquared-Agency/CardioRisk/internal/hermes"
	"github.com/MikeSquared-Agency/CardioRisk/internal/logging"
	"github.com/MikeSquared-Agency/CardioRisk/internal/metrics"
	"github.com/MikeSquared-Agency/CardioRisk/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := logging.New("info", "json")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Model
	pipeline, err := loadPipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to load risk model", "error", err)
		os.Exit(1)
	}
	metrics.SetModel(pipeline.ModelID())
	logger.Info("risk model loaded", "model_id", pipeline.ModelID(), "backend", cfg.Model.Backend, "features", pipeline.Manifest().Len())

	// Audit store (optional)
	var db store.Store
	if cfg.Database.URL != "" {
		s, err := store.Open(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to open audit store", "error", err, "driver", cfg.Database.Driver)
			os.Exit(1)
		}
		db = s
		defer s.Close()
		logger.Info("audit store enabled", "driver", cfg.Database.Driver)
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// API server
	router := api.NewRouter(pipeline, db, hermesClient, cfg.Server, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

// loadPipeline reads the manifest and model and checks they agree. The
// service does not start without a usable model.
func loadPipeline(cfg *config.Config, logger *slog.Logger) (*assessment.Pipeline, error) {
	manifest := features.DefaultManifest()
	if cfg.Model.ManifestPath != "" {
		m, err := features.LoadManifest(cfg.Model.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		manifest = m
	} else {
		logger.Warn("no manifest path configured, using built-in field order")
	}

	enc, err := features.NewEncoder(manifest)
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}
	model, err := classifier.Open(cfg.Model, cfg.RemoteTimeout(), manifest)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	return assessment.New(enc, model)
}
