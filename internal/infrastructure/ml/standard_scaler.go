package ml

import "fmt"

// StandardScaler reproduces the training-time standardization of the
// continuous features: (x - mean) / scale per position. Immutable after
// construction.
type StandardScaler struct {
	means  []float64
	scales []float64
}

// NewStandardScaler creates a scaler from trained parameters. Every scale
// must be positive.
func NewStandardScaler(means, scales []float64) (*StandardScaler, error) {
	if len(means) != len(scales) {
		return nil, fmt.Errorf("scaler has %d means but %d scales", len(means), len(scales))
	}
	for i, s := range scales {
		if s <= 0 {
			return nil, fmt.Errorf("scaler position %d has non-positive scale %g", i, s)
		}
	}

	m := make([]float64, len(means))
	copy(m, means)
	s := make([]float64, len(scales))
	copy(s, scales)
	return &StandardScaler{means: m, scales: s}, nil
}

// Transform standardizes a value vector in the trained feature order.
func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.means) {
		return nil, fmt.Errorf("value vector has %d values, scaler expects %d", len(values), len(s.means))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.means[i]) / s.scales[i]
	}
	return out, nil
}

// FeatureCount returns the number of features the scaler standardizes.
func (s *StandardScaler) FeatureCount() int {
	return len(s.means)
}
