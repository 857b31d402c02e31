package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// AssessPatientRequest is the input DTO for the AssessPatient use case.
// Fields are pointers so that an absent field is distinguishable from a
// zero value; every field except bmi is required.
type AssessPatientRequest struct {
	Gender          *string  `json:"gender"`
	Age             *float64 `json:"age"`
	Hypertension    *bool    `json:"hypertension"`
	HeartDisease    *bool    `json:"heart_disease"`
	EverMarried     *bool    `json:"ever_married"`
	WorkType        *string  `json:"work_type"`
	ResidenceType   *string  `json:"residence_type"`
	AvgGlucoseLevel *float64 `json:"avg_glucose_level"`
	BMI             *float64 `json:"bmi"`
	SmokingStatus   *string  `json:"smoking_status"`
}

// ToProfile validates the request and builds the domain profile. Missing
// required fields surface as valueobject.MissingRequiredFieldError and
// unrecognized categories as valueobject.InvalidCategoryError.
func (r AssessPatientRequest) ToProfile() (model.PatientProfile, error) {
	required := []struct {
		name string
		set  bool
	}{
		{"gender", r.Gender != nil},
		{"age", r.Age != nil},
		{"hypertension", r.Hypertension != nil},
		{"heart_disease", r.HeartDisease != nil},
		{"ever_married", r.EverMarried != nil},
		{"work_type", r.WorkType != nil},
		{"residence_type", r.ResidenceType != nil},
		{"avg_glucose_level", r.AvgGlucoseLevel != nil},
		{"smoking_status", r.SmokingStatus != nil},
	}
	for _, f := range required {
		if !f.set {
			return model.PatientProfile{}, &valueobject.MissingRequiredFieldError{Field: f.name}
		}
	}

	gender, err := valueobject.GenderFromString(*r.Gender)
	if err != nil {
		return model.PatientProfile{}, err
	}
	workType, err := valueobject.WorkTypeFromString(*r.WorkType)
	if err != nil {
		return model.PatientProfile{}, err
	}
	residenceType, err := valueobject.ResidenceTypeFromString(*r.ResidenceType)
	if err != nil {
		return model.PatientProfile{}, err
	}
	smokingStatus, err := valueobject.SmokingStatusFromString(*r.SmokingStatus)
	if err != nil {
		return model.PatientProfile{}, err
	}

	return model.PatientProfile{
		Gender:          gender,
		Age:             *r.Age,
		Hypertension:    *r.Hypertension,
		HeartDisease:    *r.HeartDisease,
		EverMarried:     *r.EverMarried,
		WorkType:        workType,
		ResidenceType:   residenceType,
		AvgGlucoseLevel: *r.AvgGlucoseLevel,
		BMI:             r.BMI,
		SmokingStatus:   smokingStatus,
	}, nil
}

// ProfileResponse echoes the assessed inputs in canonical form.
type ProfileResponse struct {
	Gender          string   `json:"gender"`
	Age             float64  `json:"age"`
	Hypertension    bool     `json:"hypertension"`
	HeartDisease    bool     `json:"heart_disease"`
	EverMarried     bool     `json:"ever_married"`
	WorkType        string   `json:"work_type"`
	ResidenceType   string   `json:"residence_type"`
	AvgGlucoseLevel float64  `json:"avg_glucose_level"`
	BMI             *float64 `json:"bmi"`
	SmokingStatus   string   `json:"smoking_status"`
}

// FactorResponse is one triggered risk factor with its weight and
// explanation.
type FactorResponse struct {
	Name        string `json:"name"`
	Weight      string `json:"weight"`
	Explanation string `json:"explanation"`
}

// WarningResponse reports an input outside its plausible clinical range.
type WarningResponse struct {
	Field   string  `json:"field"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// AssessmentResponse is the output DTO for a completed assessment.
type AssessmentResponse struct {
	ID               uuid.UUID         `json:"id"`
	UserID           uuid.UUID         `json:"user_id"`
	Profile          ProfileResponse   `json:"profile"`
	MLProbability    string            `json:"ml_probability"`
	RuleProbability  string            `json:"rule_probability"`
	FinalProbability string            `json:"final_probability"`
	RiskTier         string            `json:"risk_tier"`
	Factors          []FactorResponse  `json:"factors"`
	Recommendations  []string          `json:"recommendations"`
	Warnings         []WarningResponse `json:"warnings"`
	AssessedAt       time.Time         `json:"assessed_at"`
	CreatedAt        time.Time         `json:"created_at"`
}

// StatsResponse summarizes a user's assessment history.
type StatsResponse struct {
	Count                   int64      `json:"count"`
	AverageFinalProbability string     `json:"average_final_probability"`
	MaxFinalProbability     string     `json:"max_final_probability"`
	FirstAssessedAt         *time.Time `json:"first_assessed_at,omitempty"`
}

// FromModel maps a domain assessment to the response DTO.
func FromModel(a *model.StrokeAssessment) AssessmentResponse {
	profile := a.Profile()

	factors := make([]FactorResponse, 0, len(a.Factors()))
	for _, f := range a.Factors() {
		factors = append(factors, FactorResponse{
			Name:        f.Name,
			Weight:      f.Weight.String(),
			Explanation: f.Explanation,
		})
	}

	warnings := make([]WarningResponse, 0, len(a.Warnings()))
	for _, w := range a.Warnings() {
		warnings = append(warnings, WarningResponse{
			Field:   w.Field,
			Value:   w.Value,
			Message: w.Message,
		})
	}

	recommendations := a.Recommendations()
	if recommendations == nil {
		recommendations = make([]string, 0)
	}

	return AssessmentResponse{
		ID:     a.ID(),
		UserID: a.UserID(),
		Profile: ProfileResponse{
			Gender:          profile.Gender.String(),
			Age:             profile.Age,
			Hypertension:    profile.Hypertension,
			HeartDisease:    profile.HeartDisease,
			EverMarried:     profile.EverMarried,
			WorkType:        profile.WorkType.String(),
			ResidenceType:   profile.ResidenceType.String(),
			AvgGlucoseLevel: profile.AvgGlucoseLevel,
			BMI:             profile.BMI,
			SmokingStatus:   profile.SmokingStatus.String(),
		},
		MLProbability:    a.MLProbability().String(),
		RuleProbability:  a.RuleProbability().String(),
		FinalProbability: a.FinalProbability().String(),
		RiskTier:         a.RiskTier().String(),
		Factors:          factors,
		Recommendations:  recommendations,
		Warnings:         warnings,
		AssessedAt:       a.AssessedAt(),
		CreatedAt:        a.CreatedAt(),
	}
}

// FromStats maps aggregate history stats to the response DTO.
func FromStats(s model.AssessmentStats) StatsResponse {
	return StatsResponse{
		Count:                   s.Count,
		AverageFinalProbability: s.AverageFinalProbability.String(),
		MaxFinalProbability:     s.MaxFinalProbability.String(),
		FirstAssessedAt:         s.FirstAssessedAt,
	}
}
