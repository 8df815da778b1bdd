package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/angeloszaimis/premium-estimator/internal/handler"
	"github.com/angeloszaimis/premium-estimator/internal/metrics"
)

func setupRouter(log *slog.Logger, predictionHandler *handler.PredictionHandler, metricsCollector *metrics.Collector) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(log))
	if metricsCollector != nil {
		r.Use(handler.Instrument(metricsCollector))
	}
	r.Use(handler.Recover(log))

	r.Get("/", predictionHandler.Home)
	r.Post("/predict", predictionHandler.Predict)

	if metricsCollector != nil {
		r.Get("/metrics", metricsCollector.Handler())
	}

	return r
}
