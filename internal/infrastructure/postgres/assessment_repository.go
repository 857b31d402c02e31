package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	pgpkg "github.com/rishii-05/stroke-prediction-project/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

const assessmentColumns = `
	id, user_id, gender, age, hypertension, heart_disease, ever_married,
	work_type, residence_type, avg_glucose_level, bmi, smoking_status,
	ml_probability, rule_probability, final_probability, risk_tier,
	assessed_at, version, created_at`

// Save persists a completed assessment together with its factors,
// recommendations and warnings in one transaction. Assessments are
// append-only: each scoring run produces a new row.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.StrokeAssessment) error {
	profile := assessment.Profile()

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO stroke_assessments (
				id, user_id, gender, age, hypertension, heart_disease, ever_married,
				work_type, residence_type, avg_glucose_level, bmi, smoking_status,
				ml_probability, rule_probability, final_probability, risk_tier,
				assessed_at, version, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			assessment.ID(),
			assessment.UserID(),
			profile.Gender.String(),
			profile.Age,
			profile.Hypertension,
			profile.HeartDisease,
			profile.EverMarried,
			profile.WorkType.String(),
			profile.ResidenceType.String(),
			profile.AvgGlucoseLevel,
			profile.BMI,
			profile.SmokingStatus.String(),
			assessment.MLProbability().Decimal(),
			assessment.RuleProbability().Decimal(),
			assessment.FinalProbability().Decimal(),
			assessment.RiskTier().String(),
			assessment.AssessedAt(),
			assessment.Version(),
			assessment.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		for i, factor := range assessment.Factors() {
			_, err = tx.Exec(ctx, `
				INSERT INTO assessment_factors (assessment_id, position, name, weight, explanation)
				VALUES ($1, $2, $3, $4, $5)`,
				assessment.ID(), i, factor.Name, factor.Weight, factor.Explanation,
			)
			if err != nil {
				return fmt.Errorf("failed to save risk factor: %w", err)
			}
		}

		for i, rec := range assessment.Recommendations() {
			_, err = tx.Exec(ctx, `
				INSERT INTO assessment_recommendations (assessment_id, position, recommendation)
				VALUES ($1, $2, $3)`,
				assessment.ID(), i, rec,
			)
			if err != nil {
				return fmt.Errorf("failed to save recommendation: %w", err)
			}
		}

		for i, warning := range assessment.Warnings() {
			_, err = tx.Exec(ctx, `
				INSERT INTO assessment_warnings (assessment_id, position, field, value, message)
				VALUES ($1, $2, $3, $4, $5)`,
				assessment.ID(), i, warning.Field, warning.Value, warning.Message,
			)
			if err != nil {
				return fmt.Errorf("failed to save range warning: %w", err)
			}
		}

		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier.
// Returns (nil, nil) when no assessment exists.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM stroke_assessments WHERE id = $1`, id)

	assessment, err := r.scanAssessment(ctx, row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return assessment, nil
}

// FindByUserID retrieves a user's assessments, newest first.
func (r *AssessmentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentColumns+`
		 FROM stroke_assessments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*model.StrokeAssessment
	for rows.Next() {
		assessment, err := r.scanAssessment(ctx, rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

// StatsByUserID aggregates a user's assessment history.
func (r *AssessmentRepository) StatsByUserID(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error) {
	var (
		count   int64
		average *decimal.Decimal
		maximum *decimal.Decimal
		first   *time.Time
	)

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), AVG(final_probability), MAX(final_probability), MIN(assessed_at)
		FROM stroke_assessments
		WHERE user_id = $1`,
		userID,
	).Scan(&count, &average, &maximum, &first)
	if err != nil {
		return model.AssessmentStats{}, fmt.Errorf("failed to query assessment stats: %w", err)
	}

	stats := model.AssessmentStats{Count: count, FirstAssessedAt: first}
	if average != nil {
		stats.AverageFinalProbability = *average
	}
	if maximum != nil {
		stats.MaxFinalProbability = *maximum
	}
	return stats, nil
}

func (r *AssessmentRepository) scanAssessment(ctx context.Context, row pgx.Row) (*model.StrokeAssessment, error) {
	var (
		id              uuid.UUID
		userID          uuid.UUID
		genderStr       string
		age             float64
		hypertension    bool
		heartDisease    bool
		everMarried     bool
		workTypeStr     string
		residenceStr    string
		avgGlucoseLevel float64
		bmi             *float64
		smokingStr      string
		mlProb          decimal.Decimal
		ruleProb        decimal.Decimal
		finalProb       decimal.Decimal
		riskTierStr     string
		assessedAt      time.Time
		version         int
		createdAt       time.Time
	)

	err := row.Scan(
		&id, &userID, &genderStr, &age, &hypertension, &heartDisease, &everMarried,
		&workTypeStr, &residenceStr, &avgGlucoseLevel, &bmi, &smokingStr,
		&mlProb, &ruleProb, &finalProb, &riskTierStr,
		&assessedAt, &version, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	profile, err := reconstructProfile(genderStr, age, hypertension, heartDisease, everMarried,
		workTypeStr, residenceStr, avgGlucoseLevel, bmi, smokingStr)
	if err != nil {
		return nil, err
	}

	mlProbability, err := valueobject.NewProbability(mlProb)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ml probability: %w", err)
	}
	ruleProbability, err := valueobject.NewProbability(ruleProb)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule probability: %w", err)
	}
	finalProbability, err := valueobject.NewProbability(finalProb)
	if err != nil {
		return nil, fmt.Errorf("failed to parse final probability: %w", err)
	}
	riskTier, err := valueobject.RiskTierFromString(riskTierStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk tier: %w", err)
	}

	factors, err := r.loadFactors(ctx, id)
	if err != nil {
		return nil, err
	}
	recommendations, err := r.loadRecommendations(ctx, id)
	if err != nil {
		return nil, err
	}
	warnings, err := r.loadWarnings(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.ReconstructAssessment(
		id, userID, profile,
		mlProbability, ruleProbability, finalProbability,
		riskTier, factors, recommendations, warnings,
		assessedAt, version, createdAt,
	), nil
}

func reconstructProfile(
	genderStr string, age float64, hypertension, heartDisease, everMarried bool,
	workTypeStr, residenceStr string, avgGlucoseLevel float64, bmi *float64, smokingStr string,
) (model.PatientProfile, error) {
	gender, err := valueobject.GenderFromString(genderStr)
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("failed to parse gender: %w", err)
	}
	workType, err := valueobject.WorkTypeFromString(workTypeStr)
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("failed to parse work type: %w", err)
	}
	residenceType, err := valueobject.ResidenceTypeFromString(residenceStr)
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("failed to parse residence type: %w", err)
	}
	smokingStatus, err := valueobject.SmokingStatusFromString(smokingStr)
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("failed to parse smoking status: %w", err)
	}

	return model.PatientProfile{
		Gender:          gender,
		Age:             age,
		Hypertension:    hypertension,
		HeartDisease:    heartDisease,
		EverMarried:     everMarried,
		WorkType:        workType,
		ResidenceType:   residenceType,
		AvgGlucoseLevel: avgGlucoseLevel,
		BMI:             bmi,
		SmokingStatus:   smokingStatus,
	}, nil
}

func (r *AssessmentRepository) loadFactors(ctx context.Context, assessmentID uuid.UUID) ([]model.RiskFactor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, weight, explanation
		 FROM assessment_factors
		 WHERE assessment_id = $1
		 ORDER BY position`,
		assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk factors: %w", err)
	}
	defer rows.Close()

	factors := make([]model.RiskFactor, 0)
	for rows.Next() {
		var f model.RiskFactor
		if err := rows.Scan(&f.Name, &f.Weight, &f.Explanation); err != nil {
			return nil, fmt.Errorf("failed to scan risk factor: %w", err)
		}
		factors = append(factors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate risk factors: %w", err)
	}

	return factors, nil
}

func (r *AssessmentRepository) loadRecommendations(ctx context.Context, assessmentID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT recommendation
		 FROM assessment_recommendations
		 WHERE assessment_id = $1
		 ORDER BY position`,
		assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	recommendations := make([]string, 0)
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recommendations = append(recommendations, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	return recommendations, nil
}

func (r *AssessmentRepository) loadWarnings(ctx context.Context, assessmentID uuid.UUID) ([]model.RangeWarning, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT field, value, message
		 FROM assessment_warnings
		 WHERE assessment_id = $1
		 ORDER BY position`,
		assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query range warnings: %w", err)
	}
	defer rows.Close()

	warnings := make([]model.RangeWarning, 0)
	for rows.Next() {
		var w model.RangeWarning
		if err := rows.Scan(&w.Field, &w.Value, &w.Message); err != nil {
			return nil, fmt.Errorf("failed to scan range warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate range warnings: %w", err)
	}

	return warnings, nil
}
