package service

import (
	"sort"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
)

// Explainer turns the scorer's triggered rule set into ranked risk factors
// and recommendation text. It never re-evaluates thresholds; the triggered
// set is taken as computed so explanations cannot drift from the score.
type Explainer struct {
	policy *RiskPolicy
}

// NewExplainer creates an explainer over the given policy.
func NewExplainer(policy *RiskPolicy) *Explainer {
	return &Explainer{policy: policy}
}

// Explain orders the triggered rules by descending weight, breaking ties by
// the fixed category priority, and derives one recommendation per triggered
// modifiable factor. When nothing triggered, the generic recommendation is
// returned alone.
func (e *Explainer) Explain(triggered []RiskRule) ([]model.RiskFactor, []string) {
	ranked := make([]RiskRule, len(triggered))
	copy(ranked, triggered)
	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Weight.Equal(ranked[j].Weight) {
			return ranked[i].Weight.GreaterThan(ranked[j].Weight)
		}
		return e.policy.CategoryRank(ranked[i].Category) < e.policy.CategoryRank(ranked[j].Category)
	})

	factors := make([]model.RiskFactor, 0, len(ranked))
	var recommendations []string
	for _, rule := range ranked {
		factors = append(factors, model.RiskFactor{
			Name:        rule.Name,
			Weight:      rule.Weight,
			Explanation: rule.Explanation,
		})
		if rule.Recommendation != "" {
			recommendations = append(recommendations, rule.Recommendation)
		}
	}

	if len(ranked) == 0 {
		recommendations = append(recommendations, e.policy.GenericRecommendation())
	}

	return factors, recommendations
}
