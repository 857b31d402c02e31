package service

import (
	"github.com/shopspring/decimal"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// PolicyVersion identifies the active revision of the risk weight table and
// tier thresholds. The table overrides the statistical model, so any change
// here must bump the version.
const PolicyVersion = "v1"

// Factor categories. Rules within a category are mutually exclusive bands;
// only the highest matching band applies. The order of the constants below is
// also the tie-break priority when two triggered factors share a weight.
const (
	CategoryHeartDisease = "heart_disease"
	CategoryHypertension = "hypertension"
	CategoryAge          = "age"
	CategorySmoking      = "smoking"
	CategoryDiabetes     = "diabetes"
	CategoryObesity      = "obesity"
)

// RiskRule is one row of the policy table: a named condition contributing a
// fixed weight when it matches a profile. Recommendation is empty for
// non-modifiable factors.
type RiskRule struct {
	Name           string
	Category       string
	Weight         decimal.Decimal
	Explanation    string
	Recommendation string
	Matches        func(model.PatientProfile) bool
}

// RiskPolicy is the single authoritative lookup for rule weights, the
// compounding bonus, tier thresholds, and recommendation text. Scoring and
// explanation generation both consult this structure so they cannot drift.
type RiskPolicy struct {
	version               string
	rules                 []RiskRule
	categoryRank          map[string]int
	bonusTwoFactors       decimal.Decimal
	bonusThreePlusFactors decimal.Decimal
	moderateThreshold     decimal.Decimal
	highThreshold         decimal.Decimal
	genericRecommendation string
}

// NewRiskPolicy returns the v1 policy table. Within the age and obesity
// categories the rows are ordered highest band first; TriggeredRules relies
// on that ordering to apply only the highest matching band.
func NewRiskPolicy() *RiskPolicy {
	weight := decimal.RequireFromString

	rules := []RiskRule{
		{
			Name:        "age_75_plus",
			Category:    CategoryAge,
			Weight:      weight("0.35"),
			Explanation: "Age 75 or older is a major stroke risk factor",
			Matches:     func(p model.PatientProfile) bool { return p.Age >= 75 },
		},
		{
			Name:        "age_65_to_74",
			Category:    CategoryAge,
			Weight:      weight("0.25"),
			Explanation: "Age between 65 and 74 substantially raises stroke risk",
			Matches:     func(p model.PatientProfile) bool { return p.Age >= 65 && p.Age < 75 },
		},
		{
			Name:        "age_55_to_64",
			Category:    CategoryAge,
			Weight:      weight("0.15"),
			Explanation: "Age between 55 and 64 raises stroke risk",
			Matches:     func(p model.PatientProfile) bool { return p.Age >= 55 && p.Age < 65 },
		},
		{
			Name:        "heart_disease",
			Category:    CategoryHeartDisease,
			Weight:      weight("0.30"),
			Explanation: "Diagnosed heart disease",
			Matches:     func(p model.PatientProfile) bool { return p.HeartDisease },
		},
		{
			Name:        "hypertension",
			Category:    CategoryHypertension,
			Weight:      weight("0.25"),
			Explanation: "Diagnosed hypertension",
			Matches:     func(p model.PatientProfile) bool { return p.Hypertension },
		},
		{
			Name:           "elevated_glucose",
			Category:       CategoryDiabetes,
			Weight:         weight("0.15"),
			Explanation:    "Average glucose level of 126 mg/dL or above indicates possible diabetes",
			Recommendation: "Keep blood glucose under control through diet, regular exercise, and monitoring.",
			Matches:        func(p model.PatientProfile) bool { return p.AvgGlucoseLevel >= 126 },
		},
		{
			Name:           "current_smoker",
			Category:       CategorySmoking,
			Weight:         weight("0.20"),
			Explanation:    "Currently smoking roughly doubles stroke risk",
			Recommendation: "Quit smoking; cessation programs and counseling substantially lower stroke risk.",
			Matches:        func(p model.PatientProfile) bool { return p.SmokingStatus.IsCurrent() },
		},
		{
			Name:           "obesity",
			Category:       CategoryObesity,
			Weight:         weight("0.15"),
			Explanation:    "BMI of 35 or above indicates obesity",
			Recommendation: "Work toward a healthy weight through diet and regular physical activity.",
			Matches:        func(p model.PatientProfile) bool { return p.HasBMI() && *p.BMI >= 35 },
		},
		{
			Name:           "overweight",
			Category:       CategoryObesity,
			Weight:         weight("0.10"),
			Explanation:    "BMI between 30 and 35 indicates excess weight",
			Recommendation: "Work toward a healthy weight through diet and regular physical activity.",
			Matches:        func(p model.PatientProfile) bool { return p.HasBMI() && *p.BMI >= 30 && *p.BMI < 35 },
		},
	}

	return &RiskPolicy{
		version: PolicyVersion,
		rules:   rules,
		categoryRank: map[string]int{
			CategoryHeartDisease: 0,
			CategoryHypertension: 1,
			CategoryAge:          2,
			CategorySmoking:      3,
			CategoryDiabetes:     4,
			CategoryObesity:      5,
		},
		bonusTwoFactors:       weight("0.05"),
		bonusThreePlusFactors: weight("0.10"),
		moderateThreshold:     weight("0.30"),
		highThreshold:         weight("0.60"),
		genericRecommendation: "Maintain a healthy lifestyle with regular exercise and routine medical checkups.",
	}
}

// Version returns the policy revision identifier.
func (p *RiskPolicy) Version() string {
	return p.version
}

// TriggeredRules evaluates the table against a profile and returns the
// matching rows in table order, at most one per category.
func (p *RiskPolicy) TriggeredRules(profile model.PatientProfile) []RiskRule {
	var triggered []RiskRule
	matched := make(map[string]bool, len(p.categoryRank))

	for _, rule := range p.rules {
		if matched[rule.Category] {
			continue
		}
		if rule.Matches(profile) {
			triggered = append(triggered, rule)
			matched[rule.Category] = true
		}
	}

	return triggered
}

// CompoundingBonus returns the additional weight applied for multiple
// distinct triggered factors. The bonus depends on the count alone, never on
// the summed weights, and is applied exactly once.
func (p *RiskPolicy) CompoundingBonus(triggeredCount int) decimal.Decimal {
	switch {
	case triggeredCount >= 3:
		return p.bonusThreePlusFactors
	case triggeredCount == 2:
		return p.bonusTwoFactors
	default:
		return decimal.Zero
	}
}

// TierFor maps a final probability onto its risk tier. Intervals are
// closed-open: 0.30 is moderate and 0.60 is high.
func (p *RiskPolicy) TierFor(prob valueobject.Probability) valueobject.RiskTier {
	d := prob.Decimal()
	switch {
	case d.GreaterThanOrEqual(p.highThreshold):
		return valueobject.RiskTierHigh
	case d.GreaterThanOrEqual(p.moderateThreshold):
		return valueobject.RiskTierModerate
	default:
		return valueobject.RiskTierLow
	}
}

// CategoryRank returns the tie-break rank for a factor category; lower ranks
// sort first among equal weights.
func (p *RiskPolicy) CategoryRank(category string) int {
	rank, ok := p.categoryRank[category]
	if !ok {
		return len(p.categoryRank)
	}
	return rank
}

// GenericRecommendation is returned when no risk factors triggered.
func (p *RiskPolicy) GenericRecommendation() string {
	return p.genericRecommendation
}
