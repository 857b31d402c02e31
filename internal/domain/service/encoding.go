package service

import "github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"

// EncodingVersion identifies the categorical encoding revision. It must match
// the encoding used when the classifier was trained; a silent mismatch
// produces wrong predictions with no error.
const EncodingVersion = "v1"

// featureNames is the exact feature order the classifier was trained on.
var featureNames = []string{
	"gender",
	"age",
	"hypertension",
	"heart_disease",
	"ever_married",
	"work_type",
	"residence_type",
	"avg_glucose_level",
	"bmi",
	"smoking_status",
}

// continuousNames is the subset standardized by the scaler, in scaler order.
var continuousNames = []string{"age", "avg_glucose_level", "bmi"}

// Vector positions of the continuous features.
const (
	idxGender    = 0
	idxAge       = 1
	idxGlucose   = 7
	idxBMI       = 8
	idxHyper     = 2
	idxHeart     = 3
	idxMarried   = 4
	idxWork      = 5
	idxResidence = 6
	idxSmoking   = 9
)

// imputedBMI is the training-population mean substituted when BMI was not
// measured. It is part of encoding v1, fixed at training time; deriving a
// different value at inference time is a correctness bug.
const imputedBMI = 28.89

// Ordinal label codes, exactly as assigned at training time.
var (
	genderCodes = map[valueobject.Gender]float64{
		valueobject.GenderFemale: 0,
		valueobject.GenderMale:   1,
		valueobject.GenderOther:  2,
	}

	workTypeCodes = map[valueobject.WorkType]float64{
		valueobject.WorkTypeGovernment:   0,
		valueobject.WorkTypePrivate:      1,
		valueobject.WorkTypeSelfEmployed: 2,
		valueobject.WorkTypeChildren:     3,
		valueobject.WorkTypeNeverWorked:  4,
	}

	residenceCodes = map[valueobject.ResidenceType]float64{
		valueobject.ResidenceRural: 0,
		valueobject.ResidenceUrban: 1,
	}

	smokingCodes = map[valueobject.SmokingStatus]float64{
		valueobject.SmokingUnknown: 0,
		valueobject.SmokingFormer:  1,
		valueobject.SmokingNever:   2,
		valueobject.SmokingCurrent: 3,
	}
)

// FeatureNames returns the trained feature order. Artifact loaders validate
// model metadata against this to fail loudly on drift.
func FeatureNames() []string {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return names
}

// ContinuousFeatureNames returns the scaled feature subset in scaler order.
func ContinuousFeatureNames() []string {
	names := make([]string, len(continuousNames))
	copy(names, continuousNames)
	return names
}

func boolCode(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
