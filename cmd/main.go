package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/angeloszaimis/premium-estimator/config"
	"github.com/angeloszaimis/premium-estimator/internal/handler"
	"github.com/angeloszaimis/premium-estimator/internal/httpserver"
	"github.com/angeloszaimis/premium-estimator/internal/metrics"
	"github.com/angeloszaimis/premium-estimator/internal/model"
	"github.com/angeloszaimis/premium-estimator/internal/premium"
	"github.com/angeloszaimis/premium-estimator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	level := new(slog.LevelVar)
	level.Set(logger.ParseLevel(cfg.Logging.Level))

	out, closeOut := logOutput(cfg.Logging)
	defer closeOut()

	log := logger.New(level, true, cfg.Server.Environment, out)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	estimator, err := loadEstimator(cfg.Model)
	if err != nil {
		log.Error("Failed to load model",
			slog.String("path", cfg.Model.Path),
			slog.String("type", cfg.Model.Type),
			slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("Model loaded",
		slog.String("path", cfg.Model.Path),
		slog.String("type", cfg.Model.Type))

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.BufferSize, log)
		collector.Start(ctx)
	}

	predictionHandler := handler.NewPredictionHandler(log, estimator, collector)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(log, predictionHandler, collector), serverTimeouts(cfg.Server))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	if file := cfg.File(); file != "" {
		log.Info("Watching config file", slog.String("file", file))
	}
	cfg.Watch(log, func(next *config.Config) {
		newLevel := logger.ParseLevel(next.Logging.Level)
		if newLevel != level.Level() {
			log.Info("Log level changed",
				slog.String("from", level.Level().String()),
				slog.String("to", newLevel.String()))
			level.Set(newLevel)
		}
	})

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Server is running! Use /predict for predictions.", slog.String("addr", cfg.Server.Address))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// loadEstimator loads the model artifact and checks that it expects the
// feature vector the encoder produces.
func loadEstimator(cfg config.ModelConfig) (*premium.Estimator, error) {
	m, err := model.Load(cfg.Type, cfg.Path)
	if err != nil {
		return nil, err
	}

	if m.NumFeatures() != premium.FeatureCount {
		return nil, fmt.Errorf("%w: model expects %d features, encoder produces %d",
			model.ErrFeatureCount, m.NumFeatures(), premium.FeatureCount)
	}

	return premium.NewEstimator(premium.NewEncoder(), m), nil
}

func logOutput(cfg config.LoggingConfig) (io.Writer, func()) {
	if cfg.File == "" {
		return os.Stdout, func() {}
	}

	w := logger.NewRotatingWriter(logger.RotationConfig{
		Filename:   cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   true,
	})

	return w, func() { w.Close() }
}

func serverTimeouts(cfg config.ServerConfig) httpserver.Timeouts {
	return httpserver.Timeouts{
		Read:     cfg.ReadTimeout,
		Write:    cfg.WriteTimeout,
		Idle:     cfg.IdleTimeout,
		Shutdown: cfg.ShutdownTimeout,
	}
}
