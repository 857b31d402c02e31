package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
)

func TestGetAssessmentStats_Execute(t *testing.T) {
	t.Run("maps history aggregates", func(t *testing.T) {
		userID := uuid.New()
		first := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)

		repo := &mockAssessmentRepository{
			statsFunc: func(_ context.Context, uid uuid.UUID) (model.AssessmentStats, error) {
				assert.Equal(t, userID, uid)
				return model.AssessmentStats{
					Count:                   3,
					AverageFinalProbability: decimal.RequireFromString("0.4"),
					MaxFinalProbability:     decimal.RequireFromString("0.6"),
					FirstAssessedAt:         &first,
				}, nil
			},
		}

		uc := usecase.NewGetAssessmentStats(repo)

		resp, err := uc.Execute(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Count)
		assert.Equal(t, "0.4", resp.AverageFinalProbability)
		assert.Equal(t, "0.6", resp.MaxFinalProbability)
		require.NotNil(t, resp.FirstAssessedAt)
		assert.Equal(t, first, *resp.FirstAssessedAt)
	})

	t.Run("returns zeros for an empty history", func(t *testing.T) {
		repo := &mockAssessmentRepository{}

		uc := usecase.NewGetAssessmentStats(repo)

		resp, err := uc.Execute(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Count)
		assert.Equal(t, "0", resp.AverageFinalProbability)
		assert.Equal(t, "0", resp.MaxFinalProbability)
		assert.Nil(t, resp.FirstAssessedAt)
	})

	t.Run("fails when the repository errors", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			statsFunc: func(_ context.Context, _ uuid.UUID) (model.AssessmentStats, error) {
				return model.AssessmentStats{}, fmt.Errorf("connection reset")
			},
		}

		uc := usecase.NewGetAssessmentStats(repo)

		_, err := uc.Execute(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load assessment stats")
	})
}
