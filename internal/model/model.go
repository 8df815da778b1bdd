package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	TypeGBTree = "gbtree"
	TypeLinear = "linear"
)

var (
	ErrUnsupportedType = errors.New("unsupported model type")
	ErrFeatureCount    = errors.New("feature count mismatch")
	ErrInvalidModel    = errors.New("invalid model")
)

// Regressor predicts one value per input row.
type Regressor interface {
	Predict(rows [][]float32) ([]float32, error)
	NumFeatures() int
}

// Load reads the artifact at path and decodes it as modelType.
func Load(modelType, path string) (Regressor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Decode(modelType, f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	return m, nil
}

// Decode parses an artifact of the given type from r and checks its structure.
func Decode(modelType string, r io.Reader) (Regressor, error) {
	var m interface {
		Regressor
		validate() error
	}

	switch modelType {
	case TypeGBTree:
		m = &GBTree{}
	case TypeLinear:
		m = &Linear{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, modelType)
	}

	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, err
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func checkWidth(row []float32, want int) error {
	if len(row) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrFeatureCount, want, len(row))
	}
	return nil
}
