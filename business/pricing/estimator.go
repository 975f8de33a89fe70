package pricing

import "math"

// EstimateSalesProfit is the closed-form demand response model. Sales decay
// exponentially as the new price rises above the reference price and grow as
// it falls below. Pure function, called identically from training reward
// shaping and serving estimation; that consistency is what makes offline
// rewards comparable to online estimates.
//
// The 1e-6 floor on oldPrice guards division by zero on degenerate rows.
func EstimateSalesProfit(
	oldPrice, newPrice float64,
	demandIndex, userInterest float64,
	baselineSales float64,
	elasticity float64,
	actualPrice float64,
) (expectedSales, profit float64) {

	demandFactor := math.Max(0, 0.6*demandIndex+0.4*userInterest)
	priceRatio := newPrice / math.Max(oldPrice, 1e-6)

	expectedSales = baselineSales * demandFactor * math.Exp(-elasticity*(priceRatio-1.0))
	expectedSales = math.Max(0, expectedSales)

	profit = (newPrice - actualPrice) * expectedSales

	return expectedSales, profit
}
