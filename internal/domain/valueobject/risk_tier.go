package valueobject

import "fmt"

// RiskTier is an immutable value object representing the risk classification
// band assigned to an assessment.
type RiskTier struct {
	value string
}

var (
	RiskTierLow      = RiskTier{value: "low"}
	RiskTierModerate = RiskTier{value: "moderate"}
	RiskTierHigh     = RiskTier{value: "high"}
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "low":
		return RiskTierLow, nil
	case "moderate":
		return RiskTierModerate, nil
	case "high":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %s", s)
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// IsHigh reports whether this is the high tier.
func (r RiskTier) IsHigh() bool {
	return r.value == "high"
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}
