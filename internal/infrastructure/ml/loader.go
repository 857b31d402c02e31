package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
)

// artifactSchemaVersion is the artifact layout this loader understands.
const artifactSchemaVersion = 1

const modelTypeLogisticRegression = "logistic_regression"

// modelArtifact is the JSON layout of the trained classifier artifact.
type modelArtifact struct {
	SchemaVersion int       `json:"schema_version"`
	ModelType     string    `json:"model_type"`
	TrainedAt     time.Time `json:"trained_at"`
	FeatureNames  []string  `json:"feature_names"`
	Coefficients  []float64 `json:"coefficients"`
	Intercept     float64   `json:"intercept"`
}

// scalerArtifact is the JSON layout of the trained scaler artifact.
type scalerArtifact struct {
	SchemaVersion int       `json:"schema_version"`
	ScalerType    string    `json:"scaler_type"`
	FeatureNames  []string  `json:"feature_names"`
	Means         []float64 `json:"means"`
	Scales        []float64 `json:"scales"`
}

// LoadModel reads and validates the classifier artifact. Every failure is a
// ModelUnavailableError: the caller must treat it as fatal at startup and
// refuse to serve traffic.
func LoadModel(path string) (*LogisticModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &port.ModelUnavailableError{Reason: "read model artifact", Err: err}
	}

	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, &port.ModelUnavailableError{Reason: "decode model artifact", Err: err}
	}

	if artifact.SchemaVersion != artifactSchemaVersion {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("unsupported model schema version %d, want %d", artifact.SchemaVersion, artifactSchemaVersion),
		}
	}
	if artifact.ModelType != modelTypeLogisticRegression {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("unsupported model type %q", artifact.ModelType),
		}
	}
	if len(artifact.Coefficients) != len(artifact.FeatureNames) {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("model has %d coefficients for %d features", len(artifact.Coefficients), len(artifact.FeatureNames)),
		}
	}
	if !sameOrder(artifact.FeatureNames, service.FeatureNames()) {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("model feature order does not match encoding %s", service.EncodingVersion),
		}
	}

	return NewLogisticModel(artifact.Coefficients, artifact.Intercept), nil
}

// LoadScaler reads and validates the scaler artifact. Failures are
// ModelUnavailableErrors, fatal at startup.
func LoadScaler(path string) (*StandardScaler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &port.ModelUnavailableError{Reason: "read scaler artifact", Err: err}
	}

	var artifact scalerArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, &port.ModelUnavailableError{Reason: "decode scaler artifact", Err: err}
	}

	if artifact.SchemaVersion != artifactSchemaVersion {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("unsupported scaler schema version %d, want %d", artifact.SchemaVersion, artifactSchemaVersion),
		}
	}
	if len(artifact.Means) != len(artifact.FeatureNames) || len(artifact.Scales) != len(artifact.FeatureNames) {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("scaler has %d means and %d scales for %d features",
				len(artifact.Means), len(artifact.Scales), len(artifact.FeatureNames)),
		}
	}
	if !sameOrder(artifact.FeatureNames, service.ContinuousFeatureNames()) {
		return nil, &port.ModelUnavailableError{
			Reason: fmt.Sprintf("scaler feature order does not match encoding %s", service.EncodingVersion),
		}
	}

	scaler, err := NewStandardScaler(artifact.Means, artifact.Scales)
	if err != nil {
		return nil, &port.ModelUnavailableError{Reason: "invalid scaler parameters", Err: err}
	}
	return scaler, nil
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
