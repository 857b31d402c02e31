package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
)

// GetAssessment is the use case for retrieving one of the caller's
// assessments.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves an assessment by ID. An assessment owned by a different
// user is reported as not found, so callers cannot probe for other users'
// assessment IDs.
func (uc *GetAssessment) Execute(ctx context.Context, userID, assessmentID uuid.UUID) (dto.AssessmentResponse, error) {
	assessment, err := uc.repo.FindByID(ctx, assessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil || assessment.UserID() != userID {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %s", ErrAssessmentNotFound, assessmentID)
	}

	return dto.FromModel(assessment), nil
}
