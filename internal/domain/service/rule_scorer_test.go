package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// baselineProfile has no triggered factors: young, no conditions, normal
// glucose and BMI, never smoked.
func baselineProfile(t *testing.T) model.PatientProfile {
	t.Helper()
	bmi := 22.0
	return model.PatientProfile{
		Gender:          valueobject.GenderFemale,
		Age:             30,
		Hypertension:    false,
		HeartDisease:    false,
		EverMarried:     false,
		WorkType:        valueobject.WorkTypePrivate,
		ResidenceType:   valueobject.ResidenceUrban,
		AvgGlucoseLevel: 85,
		BMI:             &bmi,
		SmokingStatus:   valueobject.SmokingNever,
	}
}

func triggeredNames(score service.RuleScore) []string {
	names := make([]string, 0, len(score.Triggered))
	for _, r := range score.Triggered {
		names = append(names, r.Name)
	}
	return names
}

func TestRuleScorer_NoFactors(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	score := scorer.Score(baselineProfile(t))

	assert.Equal(t, "0", score.Probability.String())
	assert.Empty(t, score.Triggered)
}

func TestRuleScorer_Age75Plus(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Age = 80

	score := scorer.Score(p)

	assert.Equal(t, "0.35", score.Probability.String())
	assert.Equal(t, []string{"age_75_plus"}, triggeredNames(score))
}

func TestRuleScorer_Age65To74(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Age = 70

	score := scorer.Score(p)

	assert.Equal(t, "0.25", score.Probability.String())
	assert.Equal(t, []string{"age_65_to_74"}, triggeredNames(score))
}

func TestRuleScorer_Age55To64(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Age = 60

	score := scorer.Score(p)

	assert.Equal(t, "0.15", score.Probability.String())
	assert.Equal(t, []string{"age_55_to_64"}, triggeredNames(score))
}

func TestRuleScorer_AgeBandsMutuallyExclusive(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	// 80 satisfies >=75 but must not also count the lower bands.
	p.Age = 80

	score := scorer.Score(p)

	require.Len(t, score.Triggered, 1)
	assert.Equal(t, "age_75_plus", score.Triggered[0].Name)
}

func TestRuleScorer_AgeBandBoundaries(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	tests := []struct {
		name string
		age  float64
		want string
	}{
		{name: "54 below first band", age: 54, want: "0"},
		{name: "55 enters lowest band", age: 55, want: "0.15"},
		{name: "64 still lowest band", age: 64, want: "0.15"},
		{name: "65 enters middle band", age: 65, want: "0.25"},
		{name: "74 still middle band", age: 74, want: "0.25"},
		{name: "75 enters top band", age: 75, want: "0.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baselineProfile(t)
			p.Age = tt.age
			assert.Equal(t, tt.want, scorer.Score(p).Probability.String())
		})
	}
}

func TestRuleScorer_AgeMonotonicAcrossBandBoundary(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	// Crossing a band boundary never decreases the rule score.
	for _, boundary := range []float64{55, 65, 75} {
		below := baselineProfile(t)
		below.Age = boundary - 1
		above := baselineProfile(t)
		above.Age = boundary

		scoreBelow := scorer.Score(below).Probability.Decimal()
		scoreAbove := scorer.Score(above).Probability.Decimal()
		assert.True(t, scoreAbove.GreaterThanOrEqual(scoreBelow),
			"P_rule decreased crossing age %v", boundary)
	}
}

func TestRuleScorer_HeartDisease(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.HeartDisease = true

	score := scorer.Score(p)

	assert.Equal(t, "0.3", score.Probability.String())
	assert.Equal(t, []string{"heart_disease"}, triggeredNames(score))
}

func TestRuleScorer_Hypertension(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Hypertension = true

	score := scorer.Score(p)

	assert.Equal(t, "0.25", score.Probability.String())
	assert.Equal(t, []string{"hypertension"}, triggeredNames(score))
}

func TestRuleScorer_ElevatedGlucose(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	t.Run("at threshold", func(t *testing.T) {
		p := baselineProfile(t)
		p.AvgGlucoseLevel = 126

		score := scorer.Score(p)

		assert.Equal(t, "0.15", score.Probability.String())
		assert.Equal(t, []string{"elevated_glucose"}, triggeredNames(score))
	})

	t.Run("just below threshold", func(t *testing.T) {
		p := baselineProfile(t)
		p.AvgGlucoseLevel = 125.9

		score := scorer.Score(p)

		assert.Equal(t, "0", score.Probability.String())
		assert.Empty(t, score.Triggered)
	})
}

func TestRuleScorer_CurrentSmoker(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	t.Run("current smoker triggers", func(t *testing.T) {
		p := baselineProfile(t)
		p.SmokingStatus = valueobject.SmokingCurrent

		score := scorer.Score(p)

		assert.Equal(t, "0.2", score.Probability.String())
		assert.Equal(t, []string{"current_smoker"}, triggeredNames(score))
	})

	t.Run("former smoker does not", func(t *testing.T) {
		p := baselineProfile(t)
		p.SmokingStatus = valueobject.SmokingFormer

		assert.Empty(t, scorer.Score(p).Triggered)
	})
}

func TestRuleScorer_BMIBands(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())

	tests := []struct {
		name      string
		bmi       float64
		want      string
		wantNames []string
	}{
		{name: "29.9 no band", bmi: 29.9, want: "0", wantNames: nil},
		{name: "30 enters overweight", bmi: 30, want: "0.1", wantNames: []string{"overweight"}},
		{name: "34.9 still overweight", bmi: 34.9, want: "0.1", wantNames: []string{"overweight"}},
		{name: "35 enters obesity", bmi: 35, want: "0.15", wantNames: []string{"obesity"}},
		{name: "40 only obesity applies", bmi: 40, want: "0.15", wantNames: []string{"obesity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baselineProfile(t)
			p.BMI = &tt.bmi

			score := scorer.Score(p)

			assert.Equal(t, tt.want, score.Probability.String())
			assert.Equal(t, tt.wantNames, func() []string {
				if len(score.Triggered) == 0 {
					return nil
				}
				return triggeredNames(score)
			}())
		})
	}
}

func TestRuleScorer_MissingBMITriggersNoBand(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.BMI = nil

	score := scorer.Score(p)

	assert.Equal(t, "0", score.Probability.String())
	assert.Empty(t, score.Triggered)
}

func TestRuleScorer_TwoFactorBonus(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Hypertension = true
	p.SmokingStatus = valueobject.SmokingCurrent

	score := scorer.Score(p)

	// hypertension 0.25 + current_smoker 0.20 + two-factor bonus 0.05 = 0.50
	assert.Equal(t, "0.5", score.Probability.String())
	assert.Len(t, score.Triggered, 2)
}

func TestRuleScorer_ThreeFactorBonus(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Hypertension = true
	p.SmokingStatus = valueobject.SmokingCurrent
	p.AvgGlucoseLevel = 130

	score := scorer.Score(p)

	// hypertension 0.25 + current_smoker 0.20 + elevated_glucose 0.15
	// + three-factor bonus 0.10 = 0.70
	assert.Equal(t, "0.7", score.Probability.String())
	assert.Len(t, score.Triggered, 3)
}

func TestRuleScorer_BonusDependsOnCountNotWeights(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	p := baselineProfile(t)
	p.Age = 80
	p.HeartDisease = true

	score := scorer.Score(p)

	// The two heaviest factors still get only the two-factor bonus:
	// age_75_plus 0.35 + heart_disease 0.30 + 0.05 = 0.70
	assert.Equal(t, "0.7", score.Probability.String())
}

func TestRuleScorer_ClippedAtOne(t *testing.T) {
	scorer := service.NewRuleScorer(service.NewRiskPolicy())
	bmi := 32.0
	p := model.PatientProfile{
		Gender:          valueobject.GenderMale,
		Age:             75,
		Hypertension:    true,
		HeartDisease:    true,
		EverMarried:     true,
		WorkType:        valueobject.WorkTypePrivate,
		ResidenceType:   valueobject.ResidenceUrban,
		AvgGlucoseLevel: 150,
		BMI:             &bmi,
		SmokingStatus:   valueobject.SmokingCurrent,
	}

	score := scorer.Score(p)

	// age_75_plus 0.35 + heart_disease 0.30 + hypertension 0.25 +
	// elevated_glucose 0.15 + current_smoker 0.20 + overweight 0.10 = 1.35,
	// plus the three-factor bonus 0.10, clipped to 1.
	assert.Equal(t, "1", score.Probability.String())
	assert.Len(t, score.Triggered, 6)
}
