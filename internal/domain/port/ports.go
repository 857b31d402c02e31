package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/pkg/events"
)

// StrokePredictor wraps the trained classifier artifact. Implementations load
// the artifact once at startup and treat it as read-only for the process
// lifetime, so concurrent calls need no locking.
type StrokePredictor interface {
	// PredictProbability returns the probability of the positive class for a
	// normalized feature vector.
	PredictProbability(features []float64) (float64, error)

	// InputSize returns the feature vector length the model was trained on.
	InputSize() int
}

// FeatureScaler applies the training-time standardization to the continuous
// feature subset, in the order [age, avg_glucose_level, bmi].
type FeatureScaler interface {
	Transform(values []float64) ([]float64, error)
}

// AssessmentRepository defines the persistence port for stroke assessments.
type AssessmentRepository interface {
	// Save persists a completed assessment.
	Save(ctx context.Context, assessment *model.StrokeAssessment) error

	// FindByID retrieves an assessment by its unique identifier.
	// Returns (nil, nil) when no assessment exists.
	FindByID(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error)

	// FindByUserID retrieves a user's assessments, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error)

	// StatsByUserID aggregates a user's assessment history.
	StatsByUserID(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error)
}

// UserRepository defines the persistence port for user accounts.
type UserRepository interface {
	// Save persists a new user.
	Save(ctx context.Context, user *model.User) error

	// FindByID retrieves a user by ID. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByUsername retrieves a user by username. Returns (nil, nil) when absent.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
