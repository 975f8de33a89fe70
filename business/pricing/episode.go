package pricing

import (
	"fmt"
	"math"
	"math/rand"

	"smartPricer/domain"
)

// Episode is the pricing simulation state machine. It walks a historical
// dataset one "product-day" at a time: an action becomes a new price, the
// estimator turns the price move into expected sales and profit, and penalty
// shaping produces the scalar reward.
//
// An Episode is single-owner state: parallel rollouts each hold their own
// instance. The scaler and config handles it shares are read-only.
type Episode struct {
	rows   []domain.MarketState
	scaler *Scaler
	cfg    EngineConfig
	rng    *rand.Rand

	state      domain.MarketState
	step       int
	active     bool
	terminated bool
}

// NewEpisode builds a state machine over the given historical rows. The seed
// makes Reset's row choice reproducible across training runs.
func NewEpisode(rows []domain.MarketState, scaler *Scaler, cfg EngineConfig, seed int64) (*Episode, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("new episode: empty dataset")
	}

	return &Episode{
		rows:   rows,
		scaler: scaler,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Len reports the number of historical rows backing the episode.
func (e *Episode) Len() int {
	return len(e.rows)
}

// Reset picks a starting row uniformly at random, enters the ACTIVE state and
// returns the normalized observation of that row.
func (e *Episode) Reset() domain.Observation {
	e.step = e.rng.Intn(len(e.rows))
	e.state = e.rows[e.step]
	e.active = true
	e.terminated = false

	return e.scaler.Normalize(e.state)
}

// ResetAt starts the episode at a fixed row index; used by deterministic
// evaluation rollouts.
func (e *Episode) ResetAt(index int) domain.Observation {
	if index < 0 || index >= len(e.rows) {
		index = 0
	}
	e.step = index
	e.state = e.rows[e.step]
	e.active = true
	e.terminated = false

	return e.scaler.Normalize(e.state)
}

// Terminated reports whether the step index has exhausted the dataset.
func (e *Episode) Terminated() bool {
	return e.terminated
}

// State returns the current market state snapshot.
func (e *Episode) State() domain.MarketState {
	return e.state
}

// Step applies one price adjustment:
//
//	new_price   = selling_price * (1 + clip(action))
//	margin floor, optional ceiling, demand response, penalty shaping
//	reward      = (profit - competitor_penalty - holding_penalty) / 1000
//
// The new price persists into the next step (prices are path-dependent within
// an episode); every other field is re-read from the next historical row.
// When the dataset is exhausted the episode terminates and a zero observation
// is returned. Calling Step on a terminated or never-reset episode fails with
// ErrEpisodeTerminated.
func (e *Episode) Step(action float64) (domain.Observation, float64, bool, domain.PriceOutcome, error) {
	if !e.active || e.terminated {
		return domain.Observation{}, 0, true, domain.PriceOutcome{}, domain.ErrEpisodeTerminated
	}

	adjustment := clipAction(action)

	oldPrice := e.state.SellingPrice
	newPrice := oldPrice * (1.0 + adjustment)

	minAllowed := math.Max(e.state.ActualPrice*(1.0+e.cfg.MinMargin), 0.01)
	if newPrice < minAllowed {
		newPrice = minAllowed
	}

	if e.cfg.MaxPrice > 0 && newPrice > e.cfg.MaxPrice {
		newPrice = e.cfg.MaxPrice
	}

	expectedSales, profit := EstimateSalesProfit(
		oldPrice, newPrice,
		e.state.DemandIndex, e.state.UserInterest,
		e.state.Sales,
		e.cfg.Elasticity,
		e.state.ActualPrice,
	)

	competitorGap := math.Max(0, newPrice-e.state.EbayPrice)
	competitorPenalty := competitorGap * 0.01 * expectedSales

	leftover := math.Max(0, e.state.Stock-expectedSales)
	holdingPenalty := leftover * e.cfg.HoldingCostPerUnit

	reward := (profit - competitorPenalty - holdingPenalty) / rewardScale

	e.state.SellingPrice = newPrice

	outcome := domain.PriceOutcome{
		Adjustment:        adjustment,
		PredictedSales:    expectedSales,
		Profit:            profit,
		CompetitorPenalty: competitorPenalty,
		HoldingPenalty:    holdingPenalty,
		NewPrice:          newPrice,
	}

	e.step++
	if e.step >= len(e.rows) {
		e.terminated = true
		return domain.Observation{}, reward, true, outcome, nil
	}

	carried := e.state.SellingPrice
	e.state = e.rows[e.step]
	e.state.SellingPrice = carried

	return e.scaler.Normalize(e.state), reward, false, outcome, nil
}
