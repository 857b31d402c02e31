package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssessmentStats summarizes a user's assessment history. When the user has
// no assessments, Count is zero, the probabilities are zero, and
// FirstAssessedAt is nil.
type AssessmentStats struct {
	Count                   int64
	AverageFinalProbability decimal.Decimal
	MaxFinalProbability     decimal.Decimal
	FirstAssessedAt         *time.Time
}
