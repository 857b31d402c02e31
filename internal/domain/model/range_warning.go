package model

// RangeWarning flags a numeric input outside its documented plausible range.
// The value is still assessed as given; warnings are surfaced to the caller so
// the boundary layer can decide whether to reject.
type RangeWarning struct {
	Field   string
	Value   float64
	Message string
}

// Plausible clinical ranges. Age is (0, 120], glucose and BMI are closed
// intervals. Values outside these produce warnings, never clamping.
const (
	maxPlausibleAge     = 120.0
	minPlausibleGlucose = 40.0
	maxPlausibleGlucose = 500.0
	minPlausibleBMI     = 10.0
	maxPlausibleBMI     = 80.0
)
