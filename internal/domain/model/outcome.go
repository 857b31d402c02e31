package model

import "github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"

// AssessmentOutcome is the full result of running the scoring pipeline for
// one profile: both intermediate probabilities, the blended final probability,
// the derived tier, and the explanation output. Immutable once constructed.
type AssessmentOutcome struct {
	MLProbability    valueobject.Probability
	RuleProbability  valueobject.Probability
	FinalProbability valueobject.Probability
	RiskTier         valueobject.RiskTier
	Factors          []RiskFactor
	Recommendations  []string
	Warnings         []RangeWarning
}
