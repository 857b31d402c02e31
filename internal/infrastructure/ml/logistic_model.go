package ml

import (
	"fmt"
	"math"
)

// LogisticModel is the loaded classifier artifact: a logistic regression over
// the encoded feature vector, sigmoid(w·x + b). Immutable after construction,
// so concurrent predictions need no locking.
type LogisticModel struct {
	coefficients []float64
	intercept    float64
}

// NewLogisticModel creates a model from trained coefficients. The slice is
// copied; the model never mutates after construction.
func NewLogisticModel(coefficients []float64, intercept float64) *LogisticModel {
	w := make([]float64, len(coefficients))
	copy(w, coefficients)
	return &LogisticModel{coefficients: w, intercept: intercept}
}

// PredictProbability returns the probability of the positive class for a
// normalized feature vector.
func (m *LogisticModel) PredictProbability(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(m.coefficients))
	}

	z := m.intercept
	for i, w := range m.coefficients {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

// InputSize returns the feature vector length the model was trained on.
func (m *LogisticModel) InputSize() int {
	return len(m.coefficients)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
