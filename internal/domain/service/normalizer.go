package service

import (
	"fmt"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// FeatureNormalizer maps a raw profile into the fixed-order numeric feature
// vector the classifier expects, applying the training-time ordinal encoding
// and standardization. Pure computation, no side effects.
type FeatureNormalizer struct {
	scaler port.FeatureScaler
}

// NewFeatureNormalizer creates a normalizer using the given scaler for the
// continuous features.
func NewFeatureNormalizer(scaler port.FeatureScaler) *FeatureNormalizer {
	return &FeatureNormalizer{scaler: scaler}
}

// FeatureCount returns the width of the produced vector.
func (n *FeatureNormalizer) FeatureCount() int {
	return len(featureNames)
}

// Normalize produces the feature vector for a profile. Missing BMI is imputed
// with the training-population mean before scaling. Categorical values
// outside the encoding table are an error, never a silent default.
func (n *FeatureNormalizer) Normalize(profile model.PatientProfile) ([]float64, error) {
	genderCode, ok := genderCodes[profile.Gender]
	if !ok {
		return nil, &valueobject.InvalidCategoryError{Field: "gender", Value: profile.Gender.String()}
	}
	workCode, ok := workTypeCodes[profile.WorkType]
	if !ok {
		return nil, &valueobject.InvalidCategoryError{Field: "work_type", Value: profile.WorkType.String()}
	}
	residenceCode, ok := residenceCodes[profile.ResidenceType]
	if !ok {
		return nil, &valueobject.InvalidCategoryError{Field: "residence_type", Value: profile.ResidenceType.String()}
	}
	smokingCode, ok := smokingCodes[profile.SmokingStatus]
	if !ok {
		return nil, &valueobject.InvalidCategoryError{Field: "smoking_status", Value: profile.SmokingStatus.String()}
	}

	bmi := imputedBMI
	if profile.HasBMI() {
		bmi = *profile.BMI
	}

	scaled, err := n.scaler.Transform([]float64{profile.Age, profile.AvgGlucoseLevel, bmi})
	if err != nil {
		return nil, fmt.Errorf("scale continuous features: %w", err)
	}
	if len(scaled) != len(continuousNames) {
		return nil, fmt.Errorf("scaler returned %d values, want %d", len(scaled), len(continuousNames))
	}

	vector := make([]float64, len(featureNames))
	vector[idxGender] = genderCode
	vector[idxAge] = scaled[0]
	vector[idxHyper] = boolCode(profile.Hypertension)
	vector[idxHeart] = boolCode(profile.HeartDisease)
	vector[idxMarried] = boolCode(profile.EverMarried)
	vector[idxWork] = workCode
	vector[idxResidence] = residenceCode
	vector[idxGlucose] = scaled[1]
	vector[idxBMI] = scaled[2]
	vector[idxSmoking] = smokingCode

	return vector, nil
}
