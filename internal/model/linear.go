package model

import "fmt"

// Linear is an ordinary linear regression: intercept + Σ weight·feature.
type Linear struct {
	Intercept float32   `json:"intercept"`
	Weights   []float32 `json:"weights"`
}

func (l *Linear) NumFeatures() int {
	return len(l.Weights)
}

func (l *Linear) Predict(rows [][]float32) ([]float32, error) {
	out := make([]float32, 0, len(rows))

	for _, row := range rows {
		if err := checkWidth(row, len(l.Weights)); err != nil {
			return nil, err
		}

		sum := l.Intercept
		for i, w := range l.Weights {
			sum += w * row[i]
		}
		out = append(out, sum)
	}

	return out, nil
}

func (l *Linear) validate() error {
	if len(l.Weights) == 0 {
		return fmt.Errorf("%w: no weights", ErrInvalidModel)
	}
	return nil
}
