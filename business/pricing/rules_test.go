package pricing

import (
	"testing"

	"smartPricer/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyRules_CompetitorCapThenClearance(t *testing.T) {
	s := domain.MarketState{
		ActualPrice: 10,
		EbayPrice:   20,
		Stock:       60,
		DemandIndex: 0.3,
	}

	// proposal above the cap: cap fires first, then the clearance discount
	// pulls the price lower still
	price, rule := ApplyRules(25, s)

	assert.LessOrEqual(t, price, s.EbayPrice*1.05)
	assert.Equal(t, 19.0, price) // 20 * 0.95
	assert.Equal(t, RuleStockClearanceDiscount, rule)
}

func TestApplyRules_ClearanceOnlyLabelsWhenItLowers(t *testing.T) {
	s := domain.MarketState{
		ActualPrice: 10,
		EbayPrice:   20,
		Stock:       60,
		DemandIndex: 0.3,
	}

	// proposal already below the clearance level: neither cap nor clearance
	// mutate the price, so no rule is reported
	price, rule := ApplyRules(15, s)

	assert.Equal(t, 15.0, price)
	assert.Equal(t, RuleNone, rule)
}

func TestApplyRules_MarginSafeguardDominates(t *testing.T) {
	s := domain.MarketState{
		ActualPrice: 10,
		EbayPrice:   5, // cap would push the price below cost
		Stock:       0,
		DemandIndex: 0.1,
	}

	price, rule := ApplyRules(12, s)

	assert.Equal(t, s.ActualPrice, price)
	assert.Equal(t, RuleMinPriceSafeguard, rule)
}

func TestApplyRules_HighDemandPremium(t *testing.T) {
	s := domain.MarketState{
		ActualPrice:  10,
		EbayPrice:    30,
		Stock:        10,
		DemandIndex:  0.9,
		UserInterest: 0.8,
	}

	price, rule := ApplyRules(20, s)

	assert.Equal(t, 22.0, price)
	assert.Equal(t, RuleHighDemandPremium, rule)
}

func TestApplyRules_NoRuleFires(t *testing.T) {
	s := domain.MarketState{
		ActualPrice:  10,
		EbayPrice:    30,
		Stock:        10,
		DemandIndex:  0.5,
		UserInterest: 0.5,
	}

	price, rule := ApplyRules(20, s)

	assert.Equal(t, 20.0, price)
	assert.Equal(t, RuleNone, rule)
}

// Cap fires, then the premium fires on the capped value; only the last
// mutating rule is reported.
func TestApplyRules_LastMutatingRuleWins(t *testing.T) {
	s := domain.MarketState{
		ActualPrice:  10,
		SellingPrice: 20,
		EbayPrice:    19,
		Stock:        10,
		DemandIndex:  0.9,
		UserInterest: 0.8,
		Sales:        100,
	}

	// raw adjustment +0.1 on selling price 20 proposes 22.0
	price, rule := ApplyRules(22.0, s)

	// cap: 19 * 1.05 = 19.95, premium: 19.95 * 1.1 = 21.945 -> 21.95
	assert.Equal(t, 21.95, price)
	assert.Equal(t, RuleHighDemandPremium, rule)
}

func TestApplyRules_RoundsToTwoDecimals(t *testing.T) {
	s := domain.MarketState{
		ActualPrice: 1,
		EbayPrice:   100,
	}

	price, _ := ApplyRules(9.999, s)
	assert.Equal(t, 10.0, price)
}
