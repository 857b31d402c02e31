package service

import "github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"

// RiskBlender combines the statistical and rule-based probabilities into the
// final probability and maps it onto a risk tier.
type RiskBlender struct {
	policy *RiskPolicy
}

// NewRiskBlender creates a blender over the given policy.
func NewRiskBlender(policy *RiskPolicy) *RiskBlender {
	return &RiskBlender{policy: policy}
}

// Blend applies the one-directional safety floor: when the rule score exceeds
// the model's probability the two are averaged, otherwise the model's
// probability passes through unchanged. The rule score can only pull the
// estimate up, never down. Preserve the asymmetry exactly.
func (b *RiskBlender) Blend(mlProb, ruleProb valueobject.Probability) (valueobject.Probability, valueobject.RiskTier) {
	final := mlProb
	if ruleProb.GreaterThan(mlProb) {
		final = mlProb.Mean(ruleProb)
	}
	return final, b.policy.TierFor(final)
}
