package pricing

import (
	"context"

	"smartPricer/domain"
)

// EngineConfig carries the tuning constants shared by the episode simulation
// and the serving path. MaxPrice of 0 means no ceiling. MaxStock is reserved
// configuration: stored and round-tripped but not consumed by any rule yet.
type EngineConfig struct {
	Elasticity         float64
	HoldingCostPerUnit float64
	MinMargin          float64
	MaxPrice           float64
	MaxStock           float64

	// defaults for the optional temporal features when a caller omits them;
	// one policy for both training and serving
	DefaultDayOfWeek int
	DefaultSeason    int
}

const (
	defaultElasticity         = 3.0
	defaultHoldingCostPerUnit = 0.5
	defaultMinMargin          = 0.01
	defaultDayOfWeek          = 2
	defaultSeason             = 0

	// reward rescale keeps magnitudes in a range suited to typical
	// policy-gradient learning rates; a tuning constant, not a semantic law
	rewardScale = 1000.0
)

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Elasticity:         defaultElasticity,
		HoldingCostPerUnit: defaultHoldingCostPerUnit,
		MinMargin:          defaultMinMargin,
		MaxPrice:           0,
		MaxStock:           0,
		DefaultDayOfWeek:   defaultDayOfWeek,
		DefaultSeason:      defaultSeason,
	}
}

// ConfigScopeDefault is the scope row applied when no category override exists.
const ConfigScopeDefault = "default"

// ConfigRepository reads per-scope engine overrides from the database.
type ConfigRepository interface {
	GetConfig(ctx context.Context, scope string) (domain.PricingConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.PricingConfig) error
}

// fromDomain overlays a stored config row on top of base, keeping base values
// for zero fields so partial rows stay sane.
func fromDomain(base EngineConfig, dbCfg domain.PricingConfig) EngineConfig {
	cfg := base

	if dbCfg.Elasticity > 0 {
		cfg.Elasticity = dbCfg.Elasticity
	}
	if dbCfg.HoldingCostPerUnit > 0 {
		cfg.HoldingCostPerUnit = dbCfg.HoldingCostPerUnit
	}
	if dbCfg.MinMargin > 0 {
		cfg.MinMargin = dbCfg.MinMargin
	}
	if dbCfg.MaxPrice > 0 {
		cfg.MaxPrice = dbCfg.MaxPrice
	}
	if dbCfg.MaxStock > 0 {
		cfg.MaxStock = dbCfg.MaxStock
	}
	if dbCfg.DefaultDayOfWeek > 0 {
		cfg.DefaultDayOfWeek = dbCfg.DefaultDayOfWeek
	}
	if dbCfg.DefaultSeason > 0 {
		cfg.DefaultSeason = dbCfg.DefaultSeason
	}

	return cfg
}
