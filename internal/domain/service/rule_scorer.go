package service

import (
	"github.com/shopspring/decimal"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// RuleScore is the output of the rule-based scorer: the additive probability
// and the rules that contributed to it. The triggered set is reused by the
// explainer so explanation and score stay consistent.
type RuleScore struct {
	Probability valueobject.Probability
	Triggered   []RiskRule
}

// RuleScorer computes a deterministic risk estimate from raw clinical fields
// using the policy weight table. It is independent of the statistical model
// and acts as a safety floor for it.
type RuleScorer struct {
	policy *RiskPolicy
}

// NewRuleScorer creates a scorer over the given policy.
func NewRuleScorer(policy *RiskPolicy) *RuleScorer {
	return &RuleScorer{policy: policy}
}

// Score evaluates the policy table against a profile. The result is the sum
// of the triggered weights plus the compounding bonus, clipped to [0, 1].
func (s *RuleScorer) Score(profile model.PatientProfile) RuleScore {
	triggered := s.policy.TriggeredRules(profile)

	sum := decimal.Zero
	for _, rule := range triggered {
		sum = sum.Add(rule.Weight)
	}
	sum = sum.Add(s.policy.CompoundingBonus(len(triggered)))

	return RuleScore{
		Probability: valueobject.ClippedProbability(sum),
		Triggered:   triggered,
	}
}
