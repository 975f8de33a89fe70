package pricing

import (
	"math"

	"smartPricer/domain"
)

// Rule labels returned by ApplyRules. Only the LAST rule that mutated the
// price is reported even when several fire in sequence.
const (
	RuleNone                   = "none"
	RuleCapAboveCompetitor     = "cap_above_competitor"
	RuleStockClearanceDiscount = "stock_clearance_discount"
	RuleHighDemandPremium      = "high_demand_premium"
	RuleMinPriceSafeguard      = "min_price_safeguard"
)

// ApplyRules sanitizes a proposed price against the market snapshot it was
// proposed for. Rules run in a fixed order, each feeding the next:
//
//  1. cap above competitor price * 1.05
//  2. clearance discount on overstocked low-demand items
//  3. premium on high demand + high interest
//  4. never sell below cost
//
// The result is rounded to 2 decimals only at the end.
func ApplyRules(proposed float64, s domain.MarketState) (float64, string) {
	price := proposed
	ruleApplied := RuleNone

	if price > s.EbayPrice*1.05 {
		price = s.EbayPrice * 1.05
		ruleApplied = RuleCapAboveCompetitor
	}

	if s.Stock > 50 && s.DemandIndex < 0.5 {
		clearance := s.EbayPrice * 0.95
		if clearance < price {
			price = clearance
			ruleApplied = RuleStockClearanceDiscount
		}
	}

	if s.DemandIndex > 0.8 && s.UserInterest > 0.7 {
		price *= 1.1
		ruleApplied = RuleHighDemandPremium
	}

	if price < s.ActualPrice {
		price = s.ActualPrice
		ruleApplied = RuleMinPriceSafeguard
	}

	return round2(price), ruleApplied
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
