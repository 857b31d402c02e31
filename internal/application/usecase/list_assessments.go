package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// ListAssessments is the use case for retrieving a user's assessment
// history, newest first.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute lists the user's assessments. A non-positive limit falls back to
// the default page size; limits above the maximum are capped.
func (uc *ListAssessments) Execute(ctx context.Context, userID uuid.UUID, limit int) ([]dto.AssessmentResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	assessments, err := uc.repo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, dto.FromModel(a))
	}
	return responses, nil
}
