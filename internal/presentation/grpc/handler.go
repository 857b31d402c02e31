package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
)

// AssessRequest carries the patient profile to score. Scalar fields are
// pointers so that an absent field is distinguishable from a zero value,
// mirroring proto3 optional presence.
type AssessRequest struct {
	Gender          *string  `json:"gender,omitempty"`
	Age             *float64 `json:"age,omitempty"`
	Hypertension    *bool    `json:"hypertension,omitempty"`
	HeartDisease    *bool    `json:"heart_disease,omitempty"`
	EverMarried     *bool    `json:"ever_married,omitempty"`
	WorkType        *string  `json:"work_type,omitempty"`
	ResidenceType   *string  `json:"residence_type,omitempty"`
	AvgGlucoseLevel *float64 `json:"avg_glucose_level,omitempty"`
	BMI             *float64 `json:"bmi,omitempty"`
	SmokingStatus   *string  `json:"smoking_status,omitempty"`
}

// AssessResponse wraps the completed assessment.
type AssessResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest identifies one stored assessment.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse wraps the fetched assessment.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ProfileMsg echoes the assessed inputs in canonical form.
type ProfileMsg struct {
	Gender          string   `json:"gender"`
	Age             float64  `json:"age"`
	Hypertension    bool     `json:"hypertension"`
	HeartDisease    bool     `json:"heart_disease"`
	EverMarried     bool     `json:"ever_married"`
	WorkType        string   `json:"work_type"`
	ResidenceType   string   `json:"residence_type"`
	AvgGlucoseLevel float64  `json:"avg_glucose_level"`
	BMI             *float64 `json:"bmi,omitempty"`
	SmokingStatus   string   `json:"smoking_status"`
}

// FactorMsg is one triggered risk factor.
type FactorMsg struct {
	Name        string `json:"name"`
	Weight      string `json:"weight"`
	Explanation string `json:"explanation"`
}

// WarningMsg reports an input outside its plausible clinical range.
type WarningMsg struct {
	Field   string  `json:"field"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// AssessmentMsg is the wire form of a completed assessment.
type AssessmentMsg struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	Profile          *ProfileMsg            `json:"profile"`
	MLProbability    string                 `json:"ml_probability"`
	RuleProbability  string                 `json:"rule_probability"`
	FinalProbability string                 `json:"final_probability"`
	RiskTier         string                 `json:"risk_tier"`
	Factors          []*FactorMsg           `json:"factors"`
	Recommendations  []string               `json:"recommendations"`
	Warnings         []*WarningMsg          `json:"warnings"`
	AssessedAt       *timestamppb.Timestamp `json:"assessed_at"`
	CreatedAt        *timestamppb.Timestamp `json:"created_at"`
}

// Compile-time check that the handler satisfies the service interface.
var _ StrokeServiceServer = (*StrokeServiceHandler)(nil)

// StrokeServiceHandler implements StrokeServiceServer on top of the
// application use cases.
type StrokeServiceHandler struct {
	UnimplementedStrokeServiceServer
	assess *usecase.AssessPatient
	get    *usecase.GetAssessment
	logger *slog.Logger
}

// NewStrokeServiceHandler creates a new gRPC handler.
func NewStrokeServiceHandler(assess *usecase.AssessPatient, get *usecase.GetAssessment, logger *slog.Logger) *StrokeServiceHandler {
	return &StrokeServiceHandler{
		assess: assess,
		get:    get,
		logger: logger,
	}
}

// Assess scores a patient profile for the authenticated user.
func (h *StrokeServiceHandler) Assess(ctx context.Context, req *AssessRequest) (*AssessResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.assess.Execute(ctx, userID, dto.AssessPatientRequest{
		Gender:          req.Gender,
		Age:             req.Age,
		Hypertension:    req.Hypertension,
		HeartDisease:    req.HeartDisease,
		EverMarried:     req.EverMarried,
		WorkType:        req.WorkType,
		ResidenceType:   req.ResidenceType,
		AvgGlucoseLevel: req.AvgGlucoseLevel,
		BMI:             req.BMI,
		SmokingStatus:   req.SmokingStatus,
	})
	if err != nil {
		return nil, h.statusFromError(err)
	}

	return &AssessResponse{Assessment: toAssessmentMsg(resp)}, nil
}

// GetAssessment fetches one of the authenticated user's assessments.
func (h *StrokeServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid assessment id")
	}

	resp, err := h.get.Execute(ctx, userID, assessmentID)
	if err != nil {
		return nil, h.statusFromError(err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(resp)}, nil
}

// userIDFromContext resolves the caller identity placed by the auth
// interceptor.
func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID, nil
}

// statusFromError maps application errors to gRPC status codes. Internal
// details are logged, not returned to the caller.
func (h *StrokeServiceHandler) statusFromError(err error) error {
	var missingErr *valueobject.MissingRequiredFieldError
	var categoryErr *valueobject.InvalidCategoryError
	var modelErr *port.ModelUnavailableError

	switch {
	case errors.As(err, &missingErr), errors.As(err, &categoryErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, "assessment not found")
	case errors.As(err, &modelErr):
		h.logger.Error("risk model unavailable", "error", err)
		return status.Error(codes.Unavailable, "risk model unavailable")
	default:
		h.logger.Error("request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toAssessmentMsg(resp dto.AssessmentResponse) *AssessmentMsg {
	factors := make([]*FactorMsg, 0, len(resp.Factors))
	for _, f := range resp.Factors {
		factors = append(factors, &FactorMsg{
			Name:        f.Name,
			Weight:      f.Weight,
			Explanation: f.Explanation,
		})
	}

	warnings := make([]*WarningMsg, 0, len(resp.Warnings))
	for _, w := range resp.Warnings {
		warnings = append(warnings, &WarningMsg{
			Field:   w.Field,
			Value:   w.Value,
			Message: w.Message,
		})
	}

	return &AssessmentMsg{
		ID:     resp.ID.String(),
		UserID: resp.UserID.String(),
		Profile: &ProfileMsg{
			Gender:          resp.Profile.Gender,
			Age:             resp.Profile.Age,
			Hypertension:    resp.Profile.Hypertension,
			HeartDisease:    resp.Profile.HeartDisease,
			EverMarried:     resp.Profile.EverMarried,
			WorkType:        resp.Profile.WorkType,
			ResidenceType:   resp.Profile.ResidenceType,
			AvgGlucoseLevel: resp.Profile.AvgGlucoseLevel,
			BMI:             resp.Profile.BMI,
			SmokingStatus:   resp.Profile.SmokingStatus,
		},
		MLProbability:    resp.MLProbability,
		RuleProbability:  resp.RuleProbability,
		FinalProbability: resp.FinalProbability,
		RiskTier:         resp.RiskTier,
		Factors:          factors,
		Recommendations:  resp.Recommendations,
		Warnings:         warnings,
		AssessedAt:       timestamppb.New(resp.AssessedAt),
		CreatedAt:        timestamppb.New(resp.CreatedAt),
	}
}
