package pricing

import (
	"math"
	"testing"

	"smartPricer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEpisode(t *testing.T, rows []domain.MarketState) *Episode {
	t.Helper()

	scaler, err := FitScaler(rows)
	require.NoError(t, err)

	ep, err := NewEpisode(rows, scaler, DefaultEngineConfig(), 1)
	require.NoError(t, err)

	return ep
}

func TestNewEpisode_EmptyDataset(t *testing.T) {
	scaler, err := FitScaler(sampleRows())
	require.NoError(t, err)

	_, err = NewEpisode(nil, scaler, DefaultEngineConfig(), 1)
	assert.Error(t, err)
}

func TestEpisode_TerminatesAfterExactlyNSteps(t *testing.T) {
	rows := sampleRows()
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)

	for i := 0; i < len(rows); i++ {
		_, _, terminated, _, err := ep.Step(0.05)
		require.NoError(t, err, "step %d", i)

		if i < len(rows)-1 {
			assert.False(t, terminated, "step %d must not terminate", i)
		} else {
			assert.True(t, terminated, "final step must terminate")
		}
	}
}

func TestEpisode_StepAfterTerminated(t *testing.T) {
	rows := sampleRows()
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)
	for range rows {
		_, _, _, _, err := ep.Step(0)
		require.NoError(t, err)
	}

	_, _, terminated, _, err := ep.Step(0)
	assert.ErrorIs(t, err, domain.ErrEpisodeTerminated)
	assert.True(t, terminated)
}

func TestEpisode_StepBeforeReset(t *testing.T) {
	ep := newTestEpisode(t, sampleRows())

	_, _, _, _, err := ep.Step(0)
	assert.ErrorIs(t, err, domain.ErrEpisodeTerminated)
}

func TestEpisode_SellingPriceCarriesAcrossSteps(t *testing.T) {
	rows := sampleRows()
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)

	_, _, _, outcome, err := ep.Step(0.1)
	require.NoError(t, err)

	next := ep.State()
	assert.Equal(t, outcome.NewPrice, next.SellingPrice, "new price must persist into the next step")

	// every other field comes from the next historical row
	assert.Equal(t, rows[1].ActualPrice, next.ActualPrice)
	assert.Equal(t, rows[1].Stock, next.Stock)
	assert.Equal(t, rows[1].DemandIndex, next.DemandIndex)
}

func TestEpisode_RewardMatchesPenaltyShaping(t *testing.T) {
	rows := []domain.MarketState{
		{ActualPrice: 10, SellingPrice: 20, EbayPrice: 19, Stock: 120, DemandIndex: 0.5, UserInterest: 0.5, Sales: 100, DayOfWeek: 2, Season: 0},
		{ActualPrice: 11, SellingPrice: 21, EbayPrice: 20, Stock: 80, DemandIndex: 0.6, UserInterest: 0.4, Sales: 90, DayOfWeek: 3, Season: 1},
	}
	cfg := DefaultEngineConfig()
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)

	const action = 0.1
	newPrice := 20 * (1 + action)

	sales, profit := EstimateSalesProfit(20, newPrice, 0.5, 0.5, 100, cfg.Elasticity, 10)
	competitorPenalty := math.Max(0, newPrice-19) * 0.01 * sales
	holdingPenalty := math.Max(0, 120-sales) * cfg.HoldingCostPerUnit
	want := (profit - competitorPenalty - holdingPenalty) / 1000.0

	_, reward, _, outcome, err := ep.Step(action)
	require.NoError(t, err)

	assert.InDelta(t, want, reward, 1e-12)
	assert.InDelta(t, sales, outcome.PredictedSales, 1e-12)
	assert.InDelta(t, newPrice, outcome.NewPrice, 1e-12)
}

func TestEpisode_ActionClippedAtBounds(t *testing.T) {
	rows := sampleRows()
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)

	_, _, _, outcome, err := ep.Step(2.0)
	require.NoError(t, err)

	assert.Equal(t, ActionHigh, outcome.Adjustment)
	assert.InDelta(t, rows[0].SellingPrice*(1+ActionHigh), outcome.NewPrice, 1e-12)
}

func TestEpisode_MarginFloorHolds(t *testing.T) {
	rows := []domain.MarketState{
		{ActualPrice: 19, SellingPrice: 20, EbayPrice: 25, Stock: 10, DemandIndex: 0.5, UserInterest: 0.5, Sales: 50},
		{ActualPrice: 19, SellingPrice: 20, EbayPrice: 25, Stock: 10, DemandIndex: 0.6, UserInterest: 0.5, Sales: 50},
	}
	ep := newTestEpisode(t, rows)

	ep.ResetAt(0)

	// full downward action would land at 14, below cost * (1 + min margin)
	_, _, _, outcome, err := ep.Step(-0.3)
	require.NoError(t, err)

	cfg := DefaultEngineConfig()
	assert.InDelta(t, 19*(1+cfg.MinMargin), outcome.NewPrice, 1e-12)
}

func TestEpisode_MaxPriceCeiling(t *testing.T) {
	rows := sampleRows()

	scaler, err := FitScaler(rows)
	require.NoError(t, err)

	cfg := DefaultEngineConfig()
	cfg.MaxPrice = 21

	ep, err := NewEpisode(rows, scaler, cfg, 1)
	require.NoError(t, err)

	ep.ResetAt(0)

	_, _, _, outcome, err := ep.Step(0.3)
	require.NoError(t, err)

	assert.Equal(t, 21.0, outcome.NewPrice)
}

func TestEpisode_ResetIsSeedReproducible(t *testing.T) {
	rows := sampleRows()

	scaler, err := FitScaler(rows)
	require.NoError(t, err)

	a, err := NewEpisode(rows, scaler, DefaultEngineConfig(), 99)
	require.NoError(t, err)
	b, err := NewEpisode(rows, scaler, DefaultEngineConfig(), 99)
	require.NoError(t, err)

	assert.Equal(t, a.Reset(), b.Reset())
	assert.Equal(t, a.State(), b.State())
}
