package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
)

// AssessPatient is the use case for scoring a patient profile and recording
// the assessment.
type AssessPatient struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	engine    *service.AssessmentEngine
}

// NewAssessPatient creates a new AssessPatient use case.
func NewAssessPatient(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	engine *service.AssessmentEngine,
) *AssessPatient {
	return &AssessPatient{
		repo:      repo,
		publisher: publisher,
		engine:    engine,
	}
}

// Execute validates the input, runs the scoring pipeline, persists the
// assessment, and publishes its events. Input validation errors pass
// through untouched so callers can map them to their own error surface.
func (uc *AssessPatient) Execute(ctx context.Context, userID uuid.UUID, req dto.AssessPatientRequest) (dto.AssessmentResponse, error) {
	profile, err := req.ToProfile()
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	assessment, err := model.NewStrokeAssessment(userID, profile)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	outcome, err := uc.engine.Assess(profile)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to score profile: %w", err)
	}

	if err := assessment.Complete(outcome); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to complete assessment: %w", err)
	}

	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), nil
}
