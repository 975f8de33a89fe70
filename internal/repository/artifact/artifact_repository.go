package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"smartPricer/business/pricing"
	"smartPricer/domain"
)

// scalerFile is the on-disk shape of the pre-fitted scaler: per-feature
// fit-time min/max plus the feature order the fit was performed against.
type scalerFile struct {
	Features []string  `json:"feature_order"`
	Min      []float64 `json:"min"`
	Max      []float64 `json:"max"`
}

// policyFile is the on-disk shape of the trained decision policy.
type policyFile struct {
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
	NoiseSigma float64   `json:"noise_sigma"`
}

// LoadScaler reads and validates the scaler artifact. Failures are fatal at
// startup; the artifact is immutable afterwards.
func LoadScaler(path string) (*pricing.Scaler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read scaler %s: %v", domain.ErrArtifactLoad, path, err)
	}

	var f scalerFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse scaler %s: %v", domain.ErrArtifactLoad, path, err)
	}

	scaler, err := pricing.NewScaler(f.Features, f.Min, f.Max)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactLoad, err)
	}

	return scaler, nil
}

// LoadPolicy reads the trained policy parameters and wraps them in the
// serving decision function.
func LoadPolicy(path string, seed int64) (*pricing.LinearPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read policy %s: %v", domain.ErrArtifactLoad, path, err)
	}

	var f policyFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse policy %s: %v", domain.ErrArtifactLoad, path, err)
	}

	policy, err := pricing.NewLinearPolicy(f.Weights, f.Bias, f.NoiseSigma, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactLoad, err)
	}

	return policy, nil
}

// SaveScaler persists a fitted scaler; offline tooling path.
func SaveScaler(path string, scaler *pricing.Scaler) error {
	features := scaler.Features()

	f := scalerFile{
		Features: features,
		Min:      make([]float64, len(features)),
		Max:      make([]float64, len(features)),
	}
	for i := range features {
		f.Min[i], f.Max[i] = scaler.Bounds(i)
	}

	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scaler: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write scaler %s: %w", path, err)
	}

	return nil
}
