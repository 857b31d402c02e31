package service

import (
	"fmt"
	"log/slog"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
)

// AssessmentEngine runs the full scoring pipeline for one profile: normalize,
// predict, rule-score, blend, explain. It holds only read-only state, so
// concurrent assessments are safe without locking.
type AssessmentEngine struct {
	normalizer *FeatureNormalizer
	predictor  port.StrokePredictor
	scorer     *RuleScorer
	blender    *RiskBlender
	explainer  *Explainer
	logger     *slog.Logger
}

// NewAssessmentEngine wires the pipeline over one policy table. The
// predictor's expected input width is checked against the encoding here so a
// mismatched artifact fails at startup, never at request time.
func NewAssessmentEngine(
	normalizer *FeatureNormalizer,
	predictor port.StrokePredictor,
	policy *RiskPolicy,
	logger *slog.Logger,
) (*AssessmentEngine, error) {
	if got, want := predictor.InputSize(), normalizer.FeatureCount(); got != want {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("model expects %d features, encoding produces %d", got, want),
		}
	}

	return &AssessmentEngine{
		normalizer: normalizer,
		predictor:  predictor,
		scorer:     NewRuleScorer(policy),
		blender:    NewRiskBlender(policy),
		explainer:  NewExplainer(policy),
		logger:     logger,
	}, nil
}

// Assess computes the outcome for one profile. Out-of-range numerics are
// carried as warnings on the outcome; the values themselves are assessed
// unmodified.
func (e *AssessmentEngine) Assess(profile model.PatientProfile) (model.AssessmentOutcome, error) {
	warnings := profile.RangeWarnings()
	for _, w := range warnings {
		e.logger.Warn("input outside plausible range",
			slog.String("field", w.Field),
			slog.Float64("value", w.Value),
		)
	}

	features, err := e.normalizer.Normalize(profile)
	if err != nil {
		return model.AssessmentOutcome{}, fmt.Errorf("normalize features: %w", err)
	}

	mlValue, err := e.predictor.PredictProbability(features)
	if err != nil {
		return model.AssessmentOutcome{}, fmt.Errorf("predict probability: %w", err)
	}
	mlProb, err := valueobject.ProbabilityFromFloat(mlValue)
	if err != nil {
		return model.AssessmentOutcome{}, fmt.Errorf("predictor returned invalid probability: %w", err)
	}

	ruleScore := e.scorer.Score(profile)
	finalProb, tier := e.blender.Blend(mlProb, ruleScore.Probability)
	factors, recommendations := e.explainer.Explain(ruleScore.Triggered)

	e.logger.Debug("assessment scored",
		slog.String("ml_probability", mlProb.String()),
		slog.String("rule_probability", ruleScore.Probability.String()),
		slog.String("final_probability", finalProb.String()),
		slog.String("risk_tier", tier.String()),
		slog.Int("triggered_factors", len(ruleScore.Triggered)),
	)

	return model.AssessmentOutcome{
		MLProbability:    mlProb,
		RuleProbability:  ruleScore.Probability,
		FinalProbability: finalProb,
		RiskTier:         tier,
		Factors:          factors,
		Recommendations:  recommendations,
		Warnings:         warnings,
	}, nil
}
