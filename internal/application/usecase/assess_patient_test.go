package usecase_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/event"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	"github.com/rishii-05/stroke-prediction-project/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	savedAssessment  *model.StrokeAssessment
	saveFunc         func(ctx context.Context, assessment *model.StrokeAssessment) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error)
	statsFunc        func(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.StrokeAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.savedAssessment = assessment
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) StatsByUserID(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID)
	}
	return model.AssessmentStats{}, nil
}

type mockEventPublisher struct {
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type stubPredictor struct {
	probability float64
	err         error
	inputSize   int
}

func (s *stubPredictor) PredictProbability(_ []float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.probability, nil
}

func (s *stubPredictor) InputSize() int {
	return s.inputSize
}

type identityScaler struct{}

func (identityScaler) Transform(values []float64) ([]float64, error) {
	return values, nil
}

// --- Tests ---

func ptr[T any](v T) *T { return &v }

func newTestEngine(t *testing.T, predictor *stubPredictor) *service.AssessmentEngine {
	t.Helper()
	engine, err := service.NewAssessmentEngine(
		service.NewFeatureNormalizer(identityScaler{}),
		predictor,
		service.NewRiskPolicy(),
		slog.Default(),
	)
	require.NoError(t, err)
	return engine
}

// validAssessRequest triggers no risk factors: middle-aged, no conditions,
// normal glucose and BMI, never smoked.
func validAssessRequest() dto.AssessPatientRequest {
	return dto.AssessPatientRequest{
		Gender:          ptr("female"),
		Age:             ptr(45.0),
		Hypertension:    ptr(false),
		HeartDisease:    ptr(false),
		EverMarried:     ptr(true),
		WorkType:        ptr("private"),
		ResidenceType:   ptr("urban"),
		AvgGlucoseLevel: ptr(95.0),
		BMI:             ptr(24.5),
		SmokingStatus:   ptr("never"),
	}
}

func TestAssessPatient_Execute(t *testing.T) {
	t.Run("successfully assesses a low-risk profile", func(t *testing.T) {
		userID := uuid.New()
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		resp, err := uc.Execute(context.Background(), userID, validAssessRequest())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "0.1", resp.MLProbability)
		assert.Equal(t, "0", resp.RuleProbability)
		assert.Equal(t, "0.1", resp.FinalProbability)
		assert.Equal(t, "low", resp.RiskTier)
		assert.Empty(t, resp.Factors)
		assert.NotEmpty(t, resp.Recommendations)
		assert.Empty(t, resp.Warnings)
		assert.Equal(t, "female", resp.Profile.Gender)
		assert.Equal(t, "never", resp.Profile.SmokingStatus)

		require.NotNil(t, repo.savedAssessment)
		assert.True(t, repo.savedAssessment.IsCompleted())

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.publishedEvents[0].EventType())
		assert.Equal(t, resp.ID, publisher.publishedEvents[0].AggregateID())
	})

	t.Run("emits a high risk event for the high tier", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.9, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		resp, err := uc.Execute(context.Background(), uuid.New(), validAssessRequest())

		require.NoError(t, err)
		assert.Equal(t, "0.9", resp.FinalProbability)
		assert.Equal(t, "high", resp.RiskTier)

		require.Len(t, publisher.publishedEvents, 2)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.publishedEvents[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.publishedEvents[1].EventType())
		assert.Equal(t, resp.ID, publisher.publishedEvents[1].AggregateID())
	})

	t.Run("raises the estimate when rules exceed the classifier", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.22, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		req := validAssessRequest()
		req.Gender = ptr("male")
		req.Age = ptr(75.0)
		req.Hypertension = ptr(true)
		req.HeartDisease = ptr(true)
		req.AvgGlucoseLevel = ptr(150.0)
		req.BMI = ptr(32.0)
		req.SmokingStatus = ptr("smokes") // dataset alias for "current"

		resp, err := uc.Execute(context.Background(), uuid.New(), req)

		require.NoError(t, err)
		assert.Equal(t, "0.22", resp.MLProbability)
		assert.Equal(t, "1", resp.RuleProbability)
		assert.Equal(t, "0.61", resp.FinalProbability)
		assert.Equal(t, "high", resp.RiskTier)
		assert.Len(t, resp.Factors, 6)
		assert.Equal(t, "current", resp.Profile.SmokingStatus)
	})

	t.Run("carries range warnings into the response", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		req := validAssessRequest()
		req.Age = ptr(130.0)

		resp, err := uc.Execute(context.Background(), uuid.New(), req)

		require.NoError(t, err)
		// The implausible value is still assessed: age 130 lands in the
		// oldest band, (0.35 + 0.1) / 2 = 0.225.
		assert.Equal(t, "0.225", resp.FinalProbability)
		require.Len(t, resp.Factors, 1)
		assert.Equal(t, "age_75_plus", resp.Factors[0].Name)
		require.Len(t, resp.Warnings, 1)
		assert.Equal(t, "age", resp.Warnings[0].Field)
		assert.Equal(t, 130.0, resp.Warnings[0].Value)
	})

	t.Run("rejects a request missing a required field", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		req := validAssessRequest()
		req.Gender = nil

		_, err := uc.Execute(context.Background(), uuid.New(), req)

		var missing *valueobject.MissingRequiredFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "gender", missing.Field)
		assert.Nil(t, repo.savedAssessment)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("rejects an unrecognized category", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		req := validAssessRequest()
		req.SmokingStatus = ptr("vapes")

		_, err := uc.Execute(context.Background(), uuid.New(), req)

		var invalid *valueobject.InvalidCategoryError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "smoking_status", invalid.Field)
		assert.Equal(t, "vapes", invalid.Value)
		assert.Nil(t, repo.savedAssessment)
	})

	t.Run("fails when the classifier cannot score", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{err: fmt.Errorf("artifact corrupt"), inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		_, err := uc.Execute(context.Background(), uuid.New(), validAssessRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to score profile")
		assert.Nil(t, repo.savedAssessment)
	})

	t.Run("fails when saving fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			saveFunc: func(_ context.Context, _ *model.StrokeAssessment) error {
				return fmt.Errorf("connection reset")
			},
		}
		publisher := &mockEventPublisher{}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		_, err := uc.Execute(context.Background(), uuid.New(), validAssessRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save assessment")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when publishing fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...events.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}
		engine := newTestEngine(t, &stubPredictor{probability: 0.1, inputSize: 10})

		uc := usecase.NewAssessPatient(repo, publisher, engine)

		_, err := uc.Execute(context.Background(), uuid.New(), validAssessRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish events")
		// The assessment was already persisted when publishing failed.
		assert.NotNil(t, repo.savedAssessment)
	})
}
