package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/premium-estimator/internal/metrics"
	"github.com/angeloszaimis/premium-estimator/internal/premium"
)

const homeMessage = "🔥 Server is running! Use /predict for predictions."

type PredictionResponse struct {
	PredictedPremium float64 `json:"predicted_premium"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PredictionHandler struct {
	logger           *slog.Logger
	estimator        *premium.Estimator
	metricsCollector *metrics.Collector
}

func NewPredictionHandler(logger *slog.Logger, estimator *premium.Estimator, collector *metrics.Collector) *PredictionHandler {
	return &PredictionHandler{
		logger:           logger,
		estimator:        estimator,
		metricsCollector: collector,
	}
}

// Home answers GET / with a plain text liveness message.
func (h *PredictionHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(homeMessage))
}

// Predict answers POST /predict. Validation failures are 400; every other
// failure is reported as 500 with the error text.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	req, err := premium.DecodeRequest(r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	value, err := h.estimator.Estimate(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.emitOutcome(metrics.OutcomeOK)
	respondJSON(w, http.StatusOK, PredictionResponse{PredictedPremium: value})
}

func (h *PredictionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if premium.IsValidationError(err) {
		h.emitOutcome(metrics.OutcomeInvalid)
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("Prediction failed",
		slog.String("path", r.URL.Path),
		slog.Any("err", err))

	h.emitOutcome(metrics.OutcomeError)
	respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func (h *PredictionHandler) emitOutcome(outcome string) {
	h.metricsCollector.Emit(metrics.MetricEvent{
		Type:      metrics.EventPredictionMade,
		Timestamp: time.Now(),
		Outcome:   outcome,
	})
}

// respondJSON marshals body before writing the status. A body that cannot be
// marshalled is answered with a 500 error payload.
func respondJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(ErrorResponse{Error: err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(payload, '\n'))
}
