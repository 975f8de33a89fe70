package domain

// PricingConfig is a per-scope override of the engine tuning constants.
// Scope is "default" or a product category name. MaxStock is stored but not
// consumed by any rule yet; it is reserved configuration, kept so existing
// rows round-trip.
type PricingConfig struct {
	Scope string `json:"scope" gorm:"column:scope;primaryKey"`

	Elasticity         float64 `json:"elasticity" gorm:"column:elasticity"`
	HoldingCostPerUnit float64 `json:"holding_cost_per_unit" gorm:"column:holding_cost_per_unit"`
	MinMargin          float64 `json:"min_margin" gorm:"column:min_margin"`
	MaxPrice           float64 `json:"max_price" gorm:"column:max_price"`
	MaxStock           float64 `json:"max_stock" gorm:"column:max_stock"`

	// defaults for optional temporal features when a request omits them
	DefaultDayOfWeek int `json:"default_day_of_week" gorm:"column:default_day_of_week"`
	DefaultSeason    int `json:"default_season" gorm:"column:default_season"`
}

func (PricingConfig) TableName() string {
	return "pricing_configs"
}
