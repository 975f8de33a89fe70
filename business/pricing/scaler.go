package pricing

import (
	"fmt"

	"smartPricer/domain"

	"gonum.org/v1/gonum/floats"
)

// Scaler is an immutable, pre-fitted min/max transform plus the feature order
// it was fitted against. Built once offline, loaded read-only by both the
// episode simulation and the serving path; never mutated after load.
type Scaler struct {
	features []string
	min      [domain.FeatureCount]float64
	max      [domain.FeatureCount]float64
}

// NewScaler validates the fitted feature order against the canonical schema.
// Any disagreement in cardinality, order or naming is a schema mismatch.
func NewScaler(features []string, min, max []float64) (*Scaler, error) {
	if len(features) != domain.FeatureCount {
		return nil, fmt.Errorf("%w: got %d features, want %d",
			domain.ErrSchemaMismatch, len(features), domain.FeatureCount)
	}
	if len(min) != domain.FeatureCount || len(max) != domain.FeatureCount {
		return nil, fmt.Errorf("%w: min/max length %d/%d, want %d",
			domain.ErrSchemaMismatch, len(min), len(max), domain.FeatureCount)
	}

	for i, name := range features {
		if name != domain.FeatureOrder[i] {
			return nil, fmt.Errorf("%w: feature %d is %q, want %q",
				domain.ErrSchemaMismatch, i, name, domain.FeatureOrder[i])
		}
	}

	s := &Scaler{features: append([]string(nil), features...)}
	copy(s.min[:], min)
	copy(s.max[:], max)

	return s, nil
}

// FitScaler builds a scaler from historical rows. Offline path, also used by
// tests; serving always loads a pre-fitted artifact instead.
func FitScaler(rows []domain.MarketState) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("fit scaler: no rows")
	}

	col := make([]float64, len(rows))
	min := make([]float64, domain.FeatureCount)
	max := make([]float64, domain.FeatureCount)

	for f := 0; f < domain.FeatureCount; f++ {
		for i, row := range rows {
			col[i] = row.Vector()[f]
		}
		min[f] = floats.Min(col)
		max[f] = floats.Max(col)
	}

	return NewScaler(domain.FeatureOrder, min, max)
}

// Normalize linearly rescales each feature to [0,1] using the fit-time
// min/max, in FeatureOrder. Raw values outside the fit range are NOT clamped
// and produce values outside [0,1]; consumers must tolerate this. A feature
// that was constant at fit time scales to 0.
func (s *Scaler) Normalize(state domain.MarketState) domain.Observation {
	raw := state.Vector()

	var obs domain.Observation
	for i, v := range raw {
		span := s.max[i] - s.min[i]
		if span == 0 {
			obs[i] = 0
			continue
		}
		obs[i] = float32((v - s.min[i]) / span)
	}

	return obs
}

// NormalizeRow is the untyped variant for callers holding a raw vector; it
// enforces the schema cardinality the struct path guarantees statically.
func (s *Scaler) NormalizeRow(vals []float64) (domain.Observation, error) {
	if len(vals) != domain.FeatureCount {
		return domain.Observation{}, fmt.Errorf("%w: row has %d values, want %d",
			domain.ErrSchemaMismatch, len(vals), domain.FeatureCount)
	}

	var state [domain.FeatureCount]float64
	copy(state[:], vals)

	var obs domain.Observation
	for i, v := range state {
		span := s.max[i] - s.min[i]
		if span == 0 {
			obs[i] = 0
			continue
		}
		obs[i] = float32((v - s.min[i]) / span)
	}

	return obs, nil
}

// Features returns the fitted feature order.
func (s *Scaler) Features() []string {
	return append([]string(nil), s.features...)
}

// Bounds returns the fit-time min and max for feature i.
func (s *Scaler) Bounds(i int) (float64, float64) {
	return s.min[i], s.max[i]
}
