package pricing

import (
	"fmt"
	"math"
	"math/rand"

	"smartPricer/domain"
)

// Action bounds: a policy proposes a fractional price change inside
// [ActionLow, ActionHigh]. Values outside are clamped, never rejected.
const (
	ActionLow  = -0.3
	ActionHigh = 0.3
)

// DecisionFunc is the external policy boundary: given a normalized
// observation it returns a numeric vector whose first element is consumed as
// the raw action. deterministic=true means "suppress exploration noise".
// The engine is agnostic to how the function was produced or trained.
type DecisionFunc func(obs domain.Observation, deterministic bool) []float64

// DecisionAdapter wraps a DecisionFunc, extracts the first scalar, falls back
// to a zero adjustment on empty or non-numeric output and clips the result
// into the legal action range.
type DecisionAdapter struct {
	decide DecisionFunc
}

func NewDecisionAdapter(fn DecisionFunc) *DecisionAdapter {
	return &DecisionAdapter{decide: fn}
}

func (a *DecisionAdapter) Decide(obs domain.Observation, deterministic bool) float64 {
	out := a.decide(obs, deterministic)
	if len(out) == 0 || math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		// invalid action from the policy: default to no adjustment
		return 0
	}

	return clipAction(out[0])
}

func clipAction(a float64) float64 {
	if a < ActionLow {
		return ActionLow
	}
	if a > ActionHigh {
		return ActionHigh
	}
	return a
}

// LinearPolicy is the concrete serving policy: a linear head over the
// normalized observation squashed into the action range, with optional
// Gaussian exploration noise for non-deterministic calls. Parameters come
// from a trained artifact and are read-only after load.
type LinearPolicy struct {
	weights    [domain.FeatureCount]float64
	bias       float64
	noiseSigma float64
	rng        *rand.Rand
}

func NewLinearPolicy(weights []float64, bias, noiseSigma float64, seed int64) (*LinearPolicy, error) {
	if len(weights) != domain.FeatureCount {
		return nil, fmt.Errorf("%w: policy has %d weights, want %d",
			domain.ErrSchemaMismatch, len(weights), domain.FeatureCount)
	}

	p := &LinearPolicy{
		bias:       bias,
		noiseSigma: noiseSigma,
		rng:        rand.New(rand.NewSource(seed)),
	}
	copy(p.weights[:], weights)

	return p, nil
}

// Decide implements DecisionFunc.
func (p *LinearPolicy) Decide(obs domain.Observation, deterministic bool) []float64 {
	sum := p.bias
	for i, w := range p.weights {
		sum += w * float64(obs[i])
	}

	action := math.Tanh(sum) * ActionHigh

	if !deterministic && p.noiseSigma > 0 {
		action += p.rng.NormFloat64() * p.noiseSigma
	}

	return []float64{action}
}
