package simulation

import (
	"context"
	"testing"

	"smartPricer/business/pricing"
	"smartPricer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products []domain.Product
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	return r.products, nil
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "a", ActualPrice: 10, SellingPrice: 20, EbayPrice: 19, Stock: 10, DemandIndex: 0.2, UserInterest: 0.1, Sales: 50},
		{ID: 2, Name: "b", ActualPrice: 15, SellingPrice: 30, EbayPrice: 28, Stock: 60, DemandIndex: 0.9, UserInterest: 0.8, Sales: 100, DayOfWeek: 6, Season: 3},
		{ID: 3, Name: "c", ActualPrice: 12, SellingPrice: 25, EbayPrice: 24, Stock: 35, DemandIndex: 0.5, UserInterest: 0.4, Sales: 75, DayOfWeek: 3, Season: 1},
	}
}

func newTestPricingService(t *testing.T, products []domain.Product) *pricing.Service {
	t.Helper()

	rows := make([]domain.MarketState, 0, len(products))
	for _, p := range products {
		rows = append(rows, p.MarketState())
	}

	scaler, err := pricing.FitScaler(rows)
	require.NoError(t, err)

	adapter := pricing.NewDecisionAdapter(func(domain.Observation, bool) []float64 {
		return []float64{0.05}
	})

	return pricing.NewService(scaler, adapter, nil, nil, pricing.DefaultEngineConfig())
}

func TestRun_DeterministicRolloutWalksTheWholeCatalog(t *testing.T) {
	products := catalogFixture()
	svc := NewService(&stubProductRepo{products: products}, newTestPricingService(t, products))

	result, err := svc.Run(context.Background(), RolloutRequest{
		StartIndex:    0,
		Deterministic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, len(products), result.StepCount)
	assert.True(t, result.Terminated)
	require.Len(t, result.Steps, len(products))

	total := 0.0
	for i, step := range result.Steps {
		assert.Equal(t, i, step.Step)
		total += step.Reward
	}
	assert.InDelta(t, total, result.TotalReward, 1e-12)
}

func TestRun_MaxStepsTruncates(t *testing.T) {
	products := catalogFixture()
	svc := NewService(&stubProductRepo{products: products}, newTestPricingService(t, products))

	result, err := svc.Run(context.Background(), RolloutRequest{
		StartIndex:    0,
		MaxSteps:      1,
		Deterministic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.StepCount)
	assert.False(t, result.Terminated)
}

func TestRun_EmptyCatalog(t *testing.T) {
	products := catalogFixture()
	svc := NewService(&stubProductRepo{}, newTestPricingService(t, products))

	_, err := svc.Run(context.Background(), RolloutRequest{StartIndex: 0})
	assert.Error(t, err)
}

func TestRun_SameSeedSameTrajectory(t *testing.T) {
	products := catalogFixture()
	svc := NewService(&stubProductRepo{products: products}, newTestPricingService(t, products))

	req := RolloutRequest{Seed: 42, StartIndex: -1, Deterministic: true}

	a, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
