package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	decimalZero = decimal.Zero
	decimalOne  = decimal.NewFromInt(1)
	decimalTwo  = decimal.NewFromInt(2)
)

// Probability is an immutable value object for a probability in [0, 1].
// It is decimal-backed so threshold comparisons and blending are exact.
type Probability struct {
	value decimal.Decimal
}

// NewProbability creates a Probability after validating the range.
func NewProbability(d decimal.Decimal) (Probability, error) {
	if d.LessThan(decimalZero) || d.GreaterThan(decimalOne) {
		return Probability{}, fmt.Errorf("probability %s out of range [0, 1]", d)
	}
	return Probability{value: d}, nil
}

// ProbabilityFromString parses a decimal string into a Probability.
func ProbabilityFromString(s string) (Probability, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Probability{}, fmt.Errorf("invalid probability %q: %w", s, err)
	}
	return NewProbability(d)
}

// ProbabilityFromFloat converts a float into a Probability.
func ProbabilityFromFloat(f float64) (Probability, error) {
	return NewProbability(decimal.NewFromFloat(f))
}

// MustProbability parses a decimal string and panics on error. Intended for
// package-level variable initialization only.
func MustProbability(s string) Probability {
	p, err := ProbabilityFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ClippedProbability builds a Probability from an unbounded decimal by
// clipping into [0, 1].
func ClippedProbability(d decimal.Decimal) Probability {
	if d.LessThan(decimalZero) {
		return Probability{value: decimalZero}
	}
	if d.GreaterThan(decimalOne) {
		return Probability{value: decimalOne}
	}
	return Probability{value: d}
}

// Decimal returns the underlying decimal value.
func (p Probability) Decimal() decimal.Decimal {
	return p.value
}

// Float64 returns the nearest float64 representation.
func (p Probability) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// String returns the decimal string representation.
func (p Probability) String() string {
	return p.value.String()
}

// GreaterThan reports whether p is strictly greater than other.
func (p Probability) GreaterThan(other Probability) bool {
	return p.value.GreaterThan(other.value)
}

// Mean returns the arithmetic mean of p and other.
func (p Probability) Mean(other Probability) Probability {
	return Probability{value: p.value.Add(other.value).Div(decimalTwo)}
}

// Equal checks equality with another Probability.
func (p Probability) Equal(other Probability) bool {
	return p.value.Equal(other.value)
}
