package pricing

import (
	"context"
	"testing"

	"smartPricer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfigRepo struct {
	rows map[string]domain.PricingConfig
}

func (r *stubConfigRepo) GetConfig(_ context.Context, scope string) (domain.PricingConfig, bool, error) {
	cfg, ok := r.rows[scope]
	return cfg, ok, nil
}

func (r *stubConfigRepo) UpsertConfig(_ context.Context, cfg domain.PricingConfig) error {
	r.rows[cfg.Scope] = cfg
	return nil
}

type stubDecisionRepo struct {
	saved []domain.PriceDecision
}

func (r *stubDecisionRepo) SaveDecision(_ context.Context, d domain.PriceDecision) error {
	r.saved = append(r.saved, d)
	return nil
}

func fixedAdapter(raw float64) *DecisionAdapter {
	return NewDecisionAdapter(func(domain.Observation, bool) []float64 {
		return []float64{raw}
	})
}

func newTestService(t *testing.T, adapter *DecisionAdapter, cfgRepo ConfigRepository, decisionRepo DecisionRepository) *Service {
	t.Helper()

	scaler, err := FitScaler(sampleRows())
	require.NoError(t, err)

	return NewService(scaler, adapter, cfgRepo, decisionRepo, DefaultEngineConfig())
}

func TestService_PredictEndToEnd(t *testing.T) {
	decisions := &stubDecisionRepo{}
	svc := newTestService(t, fixedAdapter(0.1), nil, decisions)

	snapshot := domain.MarketState{
		ActualPrice:  10,
		SellingPrice: 20,
		EbayPrice:    19,
		Stock:        10,
		DemandIndex:  0.9,
		UserInterest: 0.8,
		Sales:        100,
		DayOfWeek:    2,
		Season:       0,
	}

	resp, err := svc.Predict(context.Background(), 7, snapshot, "")
	require.NoError(t, err)

	assert.Equal(t, 0.1, resp.ActionAdjustment)
	assert.Equal(t, 22.0, resp.PredictedPricePreRule)
	assert.Equal(t, 21.95, resp.PredictedPrice)
	assert.Equal(t, RuleHighDemandPremium, resp.RuleApplied)

	sales, profit := EstimateSalesProfit(20, 21.95, 0.9, 0.8, 100, defaultElasticity, 10)
	assert.Equal(t, round2(sales), resp.ExpectedSalesEstimate)
	assert.Equal(t, round2(profit), resp.EstimatedProfit)

	require.Len(t, decisions.saved, 1)
	assert.Equal(t, uint64(7), decisions.saved[0].ProductID)
	assert.Equal(t, resp.PredictedPrice, decisions.saved[0].PredictedPrice)
}

func TestService_PredictFillsTemporalDefaults(t *testing.T) {
	svc := newTestService(t, fixedAdapter(0), nil, nil)

	snapshot := domain.MarketState{
		ActualPrice:  10,
		SellingPrice: 20,
		EbayPrice:    30,
		Stock:        10,
		DemandIndex:  0.5,
		UserInterest: 0.5,
		Sales:        50,
		DayOfWeek:    -1,
		Season:       -1,
	}

	resp, err := svc.Predict(context.Background(), 0, snapshot, "")
	require.NoError(t, err)

	// with a zero adjustment and no rule firing the selling price holds
	assert.Equal(t, 20.0, resp.PredictedPrice)
	assert.Equal(t, RuleNone, resp.RuleApplied)
}

func TestService_PredictCancelledContext(t *testing.T) {
	svc := newTestService(t, fixedAdapter(0), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Predict(ctx, 0, domain.MarketState{}, "")
	assert.Error(t, err)
}

func TestService_EngineConfigOverlay(t *testing.T) {
	cfgRepo := &stubConfigRepo{rows: map[string]domain.PricingConfig{
		ConfigScopeDefault: {Scope: ConfigScopeDefault, Elasticity: 2.0},
		"electronics":      {Scope: "electronics", MaxPrice: 500},
	}}

	svc := newTestService(t, fixedAdapter(0), cfgRepo, nil)

	cfg := svc.EngineConfig(context.Background(), "electronics")

	// default-scope row overrides the compiled default, scope row stacks on top
	assert.Equal(t, 2.0, cfg.Elasticity)
	assert.Equal(t, 500.0, cfg.MaxPrice)
	assert.Equal(t, defaultHoldingCostPerUnit, cfg.HoldingCostPerUnit)
}

func TestService_EngineConfigUnknownScopeFallsBack(t *testing.T) {
	cfgRepo := &stubConfigRepo{rows: map[string]domain.PricingConfig{}}

	svc := newTestService(t, fixedAdapter(0), cfgRepo, nil)

	cfg := svc.EngineConfig(context.Background(), "no-such-scope")
	assert.Equal(t, DefaultEngineConfig(), cfg)
}
