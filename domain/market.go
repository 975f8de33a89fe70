package domain

// FeatureOrder is the canonical order of the pricing feature vector. The
// scaler is fitted against this order and the policy consumes observations in
// this order; reordering or renaming silently corrupts the policy's inputs
// without raising an error, so every producer and consumer goes through it.
var FeatureOrder = []string{
	"actual_price",
	"selling_price",
	"ebay_price",
	"stock",
	"demand_index",
	"user_interest",
	"sales",
	"day_of_week",
	"season",
}

// FeatureCount is the fixed cardinality of FeatureOrder.
const FeatureCount = 9

// Observation is a normalized feature vector consumed by a decision policy.
type Observation [FeatureCount]float32

// MarketState is the mutable per-step record of a single product's
// pricing-relevant attributes for one simulated "product-day". Within an
// episode only SellingPrice is carried across steps; every other field is
// re-read from the next historical row.
type MarketState struct {
	ActualPrice  float64 `json:"actual_price"`
	SellingPrice float64 `json:"selling_price"`
	EbayPrice    float64 `json:"ebay_price"`
	Stock        float64 `json:"stock"`
	DemandIndex  float64 `json:"demand_index"`
	UserInterest float64 `json:"user_interest"`
	Sales        float64 `json:"sales"`
	DayOfWeek    int     `json:"day_of_week"`
	Season       int     `json:"season"`
}

// Vector returns the raw feature values in FeatureOrder.
func (m MarketState) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		m.ActualPrice,
		m.SellingPrice,
		m.EbayPrice,
		m.Stock,
		m.DemandIndex,
		m.UserInterest,
		m.Sales,
		float64(m.DayOfWeek),
		float64(m.Season),
	}
}

// PriceOutcome is the per-step result of applying an adjustment to a market
// state. It is returned to the caller and discarded, never persisted as-is.
type PriceOutcome struct {
	Adjustment        float64 `json:"adjustment"`
	PredictedSales    float64 `json:"predicted_sales"`
	Profit            float64 `json:"profit"`
	CompetitorPenalty float64 `json:"competitor_penalty"`
	HoldingPenalty    float64 `json:"holding_penalty"`
	NewPrice          float64 `json:"new_price"`
}

// ServingResponse is the payload returned for a single price prediction.
// RuleApplied records only the last rule that mutated the price; multiple
// rules can fire in sequence on the same proposal.
type ServingResponse struct {
	ActionAdjustment      float64 `json:"action_adjustment"`
	PredictedPricePreRule float64 `json:"predicted_price_pre_rule"`
	PredictedPrice        float64 `json:"predicted_price"`
	RuleApplied           string  `json:"rule_applied"`
	ExpectedSalesEstimate float64 `json:"expected_sales_estimate"`
	EstimatedProfit       float64 `json:"estimated_profit"`
}
