package model

import (
	"fmt"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// PatientProfile carries the clinical and lifestyle inputs for one assessment.
// BMI is optional: nil means not measured, which is a distinct state from zero
// and must never be coerced to it.
type PatientProfile struct {
	Gender          valueobject.Gender
	Age             float64
	Hypertension    bool
	HeartDisease    bool
	EverMarried     bool
	WorkType        valueobject.WorkType
	ResidenceType   valueobject.ResidenceType
	AvgGlucoseLevel float64
	BMI             *float64
	SmokingStatus   valueobject.SmokingStatus
}

// Validate checks that every categorical field has been set. Numeric values
// are not validated here; out-of-range numerics surface as RangeWarnings.
func (p PatientProfile) Validate() error {
	if p.Gender.IsZero() {
		return fmt.Errorf("gender is required")
	}
	if p.WorkType.IsZero() {
		return fmt.Errorf("work type is required")
	}
	if p.ResidenceType.IsZero() {
		return fmt.Errorf("residence type is required")
	}
	if p.SmokingStatus.IsZero() {
		return fmt.Errorf("smoking status is required")
	}
	return nil
}

// HasBMI reports whether a BMI measurement is present.
func (p PatientProfile) HasBMI() bool {
	return p.BMI != nil
}

// RangeWarnings reports numeric inputs outside their plausible clinical
// ranges. The profile is assessed unmodified either way.
func (p PatientProfile) RangeWarnings() []RangeWarning {
	var warnings []RangeWarning

	if p.Age <= 0 || p.Age > maxPlausibleAge {
		warnings = append(warnings, RangeWarning{
			Field:   "age",
			Value:   p.Age,
			Message: fmt.Sprintf("age %g outside plausible range (0, %g]", p.Age, maxPlausibleAge),
		})
	}
	if p.AvgGlucoseLevel < minPlausibleGlucose || p.AvgGlucoseLevel > maxPlausibleGlucose {
		warnings = append(warnings, RangeWarning{
			Field:   "avg_glucose_level",
			Value:   p.AvgGlucoseLevel,
			Message: fmt.Sprintf("avg_glucose_level %g outside plausible range [%g, %g]", p.AvgGlucoseLevel, minPlausibleGlucose, maxPlausibleGlucose),
		})
	}
	if p.BMI != nil && (*p.BMI < minPlausibleBMI || *p.BMI > maxPlausibleBMI) {
		warnings = append(warnings, RangeWarning{
			Field:   "bmi",
			Value:   *p.BMI,
			Message: fmt.Sprintf("bmi %g outside plausible range [%g, %g]", *p.BMI, minPlausibleBMI, maxPlausibleBMI),
		})
	}

	return warnings
}
