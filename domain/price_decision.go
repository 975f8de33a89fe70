package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PriceDecision is the persisted log of one served prediction. Logging is
// best-effort; a failed insert never fails the serving request.
type PriceDecision struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	ProductID             uint64    `gorm:"column:product_id" json:"product_id"`
	ActionAdjustment      float64   `gorm:"column:action_adjustment;type:numeric" json:"action_adjustment"`
	PredictedPricePreRule float64   `gorm:"column:predicted_price_pre_rule;type:numeric" json:"predicted_price_pre_rule"`
	PredictedPrice        float64   `gorm:"column:predicted_price;type:numeric" json:"predicted_price"`
	RuleApplied           string    `gorm:"column:rule_applied" json:"rule_applied"`
	ExpectedSales         float64   `gorm:"column:expected_sales;type:numeric" json:"expected_sales"`
	EstimatedProfit       float64   `gorm:"column:estimated_profit;type:numeric" json:"estimated_profit"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Context datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (PriceDecision) TableName() string {
	return "price_decisions"
}
