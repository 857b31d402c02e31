package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/event"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	"github.com/rishii-05/stroke-prediction-project/pkg/events"
)

// StrokeAssessment is the aggregate root for stroke risk assessments.
type StrokeAssessment struct {
	assessedAt       time.Time
	createdAt        time.Time
	profile          PatientProfile
	mlProbability    valueobject.Probability
	ruleProbability  valueobject.Probability
	finalProbability valueobject.Probability
	riskTier         valueobject.RiskTier
	factors          []RiskFactor
	recommendations  []string
	warnings         []RangeWarning
	domainEvents     []events.DomainEvent
	version          int
	userID           uuid.UUID
	id               uuid.UUID
}

// NewStrokeAssessment creates a new assessment for a patient profile.
// The assessment starts unscored; call Complete() with an outcome to finish it.
func NewStrokeAssessment(userID uuid.UUID, profile PatientProfile) (*StrokeAssessment, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patient profile: %w", err)
	}

	return &StrokeAssessment{
		id:        uuid.New(),
		userID:    userID,
		profile:   profile,
		version:   1,
		createdAt: time.Now().UTC(),
	}, nil
}

// Complete applies a computed outcome to the assessment. This is the domain
// state transition that makes the assessment final and emits its events.
func (a *StrokeAssessment) Complete(outcome AssessmentOutcome) error {
	if outcome.RiskTier.IsZero() {
		return fmt.Errorf("outcome has no risk tier")
	}

	a.mlProbability = outcome.MLProbability
	a.ruleProbability = outcome.RuleProbability
	a.finalProbability = outcome.FinalProbability
	a.riskTier = outcome.RiskTier
	a.factors = outcome.Factors
	a.recommendations = outcome.Recommendations
	a.warnings = outcome.Warnings
	a.assessedAt = time.Now().UTC()
	a.version++

	a.domainEvents = append(a.domainEvents, event.NewAssessmentCompleted(
		a.id, a.userID,
		a.finalProbability.String(), a.riskTier.String(),
		FactorNames(a.factors), a.assessedAt,
	))

	if a.riskTier.IsHigh() {
		a.domainEvents = append(a.domainEvents, event.NewHighRiskDetected(
			a.id, a.userID,
			a.finalProbability.String(),
			FactorNames(a.factors), a.assessedAt,
		))
	}

	return nil
}

// IsCompleted reports whether an outcome has been applied.
func (a *StrokeAssessment) IsCompleted() bool {
	return !a.riskTier.IsZero()
}

// ReconstructAssessment rebuilds a StrokeAssessment from persisted data (no
// validation, no events).
func ReconstructAssessment(
	id, userID uuid.UUID,
	profile PatientProfile,
	mlProbability, ruleProbability, finalProbability valueobject.Probability,
	riskTier valueobject.RiskTier,
	factors []RiskFactor,
	recommendations []string,
	warnings []RangeWarning,
	assessedAt time.Time,
	version int,
	createdAt time.Time,
) *StrokeAssessment {
	return &StrokeAssessment{
		id:               id,
		userID:           userID,
		profile:          profile,
		mlProbability:    mlProbability,
		ruleProbability:  ruleProbability,
		finalProbability: finalProbability,
		riskTier:         riskTier,
		factors:          factors,
		recommendations:  recommendations,
		warnings:         warnings,
		assessedAt:       assessedAt,
		version:          version,
		createdAt:        createdAt,
		domainEvents:     make([]events.DomainEvent, 0),
	}
}

// --- Accessors ---

func (a *StrokeAssessment) ID() uuid.UUID                               { return a.id }
func (a *StrokeAssessment) UserID() uuid.UUID                           { return a.userID }
func (a *StrokeAssessment) Profile() PatientProfile                     { return a.profile }
func (a *StrokeAssessment) MLProbability() valueobject.Probability      { return a.mlProbability }
func (a *StrokeAssessment) RuleProbability() valueobject.Probability    { return a.ruleProbability }
func (a *StrokeAssessment) FinalProbability() valueobject.Probability   { return a.finalProbability }
func (a *StrokeAssessment) RiskTier() valueobject.RiskTier              { return a.riskTier }
func (a *StrokeAssessment) Factors() []RiskFactor                       { return a.factors }
func (a *StrokeAssessment) Recommendations() []string                   { return a.recommendations }
func (a *StrokeAssessment) Warnings() []RangeWarning                    { return a.warnings }
func (a *StrokeAssessment) AssessedAt() time.Time                       { return a.assessedAt }
func (a *StrokeAssessment) Version() int                                { return a.version }
func (a *StrokeAssessment) CreatedAt() time.Time                        { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *StrokeAssessment) DomainEvents() []events.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
