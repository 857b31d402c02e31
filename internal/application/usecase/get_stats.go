package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
)

// GetAssessmentStats is the use case for summarizing a user's assessment
// history.
type GetAssessmentStats struct {
	repo port.AssessmentRepository
}

// NewGetAssessmentStats creates a new GetAssessmentStats use case.
func NewGetAssessmentStats(repo port.AssessmentRepository) *GetAssessmentStats {
	return &GetAssessmentStats{repo: repo}
}

// Execute returns history statistics for the user. A user with no
// assessments gets a zero-count summary, not an error.
func (uc *GetAssessmentStats) Execute(ctx context.Context, userID uuid.UUID) (dto.StatsResponse, error) {
	stats, err := uc.repo.StatsByUserID(ctx, userID)
	if err != nil {
		return dto.StatsResponse{}, fmt.Errorf("failed to load assessment stats: %w", err)
	}

	return dto.FromStats(stats), nil
}
