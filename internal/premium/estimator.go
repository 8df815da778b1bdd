package premium

import (
	"fmt"
	"math"
)

// Predictor is the one capability the estimator needs from a model artifact.
type Predictor interface {
	Predict(rows [][]float32) ([]float32, error)
}

// Estimator combines an Encoder with a loaded model.
type Estimator struct {
	encoder *Encoder
	model   Predictor
}

func NewEstimator(encoder *Encoder, model Predictor) *Estimator {
	return &Estimator{
		encoder: encoder,
		model:   model,
	}
}

// Estimate validates and encodes req, runs the model on the single resulting
// row and returns the first prediction. NaN and ±Inf are rejected since they
// have no JSON representation.
func (e *Estimator) Estimate(req Request) (float64, error) {
	features, err := e.encoder.Encode(req)
	if err != nil {
		return 0, err
	}

	out, err := e.model.Predict([][]float32{features.Row()})
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}

	if len(out) == 0 {
		return 0, ErrNoPrediction
	}

	value := float64(out[0])
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonFinite, value)
	}

	return value, nil
}
