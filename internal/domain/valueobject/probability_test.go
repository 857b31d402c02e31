package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

func TestNewProbability(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "zero", input: "0"},
		{name: "one", input: "1"},
		{name: "interior", input: "0.42"},
		{name: "below range", input: "-0.01", wantErr: true},
		{name: "above range", input: "1.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			p, err := valueobject.NewProbability(d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Decimal().Equal(d))
		})
	}
}

func TestClippedProbability(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "above one clips to one", input: "1.35", want: "1"},
		{name: "below zero clips to zero", input: "-0.2", want: "0"},
		{name: "in range unchanged", input: "0.85", want: "0.85"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			got := valueobject.ClippedProbability(d)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestProbabilityMean(t *testing.T) {
	a := valueobject.MustProbability("0.22")
	b := valueobject.MustProbability("0.95")

	// (0.22 + 0.95) / 2 = 0.585, exactly.
	assert.Equal(t, "0.585", a.Mean(b).String())
	assert.True(t, a.Mean(b).Equal(b.Mean(a)))
}

func TestProbabilityGreaterThan(t *testing.T) {
	low := valueobject.MustProbability("0.30")
	high := valueobject.MustProbability("0.60")

	assert.True(t, high.GreaterThan(low))
	assert.False(t, low.GreaterThan(high))
	assert.False(t, low.GreaterThan(low))
}
