package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAssessmentCompleted is emitted when a stroke risk assessment finishes.
	EventTypeAssessmentCompleted = "stroke.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment lands in the high tier.
	EventTypeHighRiskDetected = "stroke.high_risk.detected"

	// AggregateTypeAssessment labels events originating from the assessment aggregate.
	AggregateTypeAssessment = "stroke_assessment"
)

// AssessmentCompleted is published when a stroke risk assessment has been
// completed for a patient profile.
type AssessmentCompleted struct {
	ID               uuid.UUID `json:"event_id"`
	AssessmentID     uuid.UUID `json:"assessment_id"`
	UserID           uuid.UUID `json:"user_id"`
	FinalProbability string    `json:"final_probability"`
	RiskTier         string    `json:"risk_tier"`
	Factors          []string  `json:"factors"`
	AssessedAt       time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted builds the completion event for an assessment.
func NewAssessmentCompleted(
	assessmentID, userID uuid.UUID,
	finalProbability, riskTier string,
	factors []string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		ID:               uuid.New(),
		AssessmentID:     assessmentID,
		UserID:           userID,
		FinalProbability: finalProbability,
		RiskTier:         riskTier,
		Factors:          factors,
		AssessedAt:       assessedAt,
	}
}

// EventID returns the unique identifier of this event instance.
func (e AssessmentCompleted) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the event type identifier.
func (e AssessmentCompleted) EventType() string {
	return EventTypeAssessmentCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e AssessmentCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// AggregateType returns the aggregate type name.
func (e AssessmentCompleted) AggregateType() string {
	return AggregateTypeAssessment
}

// OccurredAt returns when the assessment completed.
func (e AssessmentCompleted) OccurredAt() time.Time {
	return e.AssessedAt
}

// HighRiskDetected is published when an assessment lands in the high risk
// tier, so downstream consumers can trigger follow-up workflows.
type HighRiskDetected struct {
	ID               uuid.UUID `json:"event_id"`
	AssessmentID     uuid.UUID `json:"assessment_id"`
	UserID           uuid.UUID `json:"user_id"`
	FinalProbability string    `json:"final_probability"`
	Factors          []string  `json:"factors"`
	DetectedAt       time.Time `json:"detected_at"`
}

// NewHighRiskDetected builds the high risk event for an assessment.
func NewHighRiskDetected(
	assessmentID, userID uuid.UUID,
	finalProbability string,
	factors []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		ID:               uuid.New(),
		AssessmentID:     assessmentID,
		UserID:           userID,
		FinalProbability: finalProbability,
		Factors:          factors,
		DetectedAt:       detectedAt,
	}
}

// EventID returns the unique identifier of this event instance.
func (e HighRiskDetected) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// AggregateType returns the aggregate type name.
func (e HighRiskDetected) AggregateType() string {
	return AggregateTypeAssessment
}

// OccurredAt returns when the high risk tier was detected.
func (e HighRiskDetected) OccurredAt() time.Time {
	return e.DetectedAt
}
