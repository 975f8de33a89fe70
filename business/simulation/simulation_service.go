package simulation

import (
	"context"
	"errors"
	"fmt"

	"smartPricer/business/pricing"
	"smartPricer/domain"
	"smartPricer/pkg/logger"
	"smartPricer/pkg/metrics"
)

// ProductRepository is the slice of the catalog the simulator needs.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// RolloutRequest drives one evaluation episode over the historical catalog.
// Seed makes the starting row (and any exploration noise) reproducible.
// StartIndex >= 0 pins the starting row instead of sampling it. MaxSteps of 0
// means run to termination.
type RolloutRequest struct {
	Seed          int64  `json:"seed"`
	StartIndex    int    `json:"start_index"`
	MaxSteps      int    `json:"max_steps"`
	Deterministic bool   `json:"deterministic"`
	Scope         string `json:"scope"`
}

// StepRecord is one ledger row of a rollout.
type StepRecord struct {
	Step    int                 `json:"step"`
	Reward  float64             `json:"reward"`
	Outcome domain.PriceOutcome `json:"outcome"`
}

type RolloutResult struct {
	Steps       []StepRecord `json:"steps"`
	TotalReward float64      `json:"total_reward"`
	StepCount   int          `json:"step_count"`
	Terminated  bool         `json:"terminated"`
}

// Service runs evaluation rollouts of the loaded policy against the episode
// state machine. Each call owns a fresh Episode instance; nothing is shared
// across concurrent rollouts except the read-only artifacts.
type Service struct {
	productRepo ProductRepository
	pricingSvc  *pricing.Service
}

func NewService(productRepo ProductRepository, pricingSvc *pricing.Service) *Service {
	return &Service{
		productRepo: productRepo,
		pricingSvc:  pricingSvc,
	}
}

func (s *Service) Run(ctx context.Context, req RolloutRequest) (RolloutResult, error) {
	if err := ctx.Err(); err != nil {
		return RolloutResult{}, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return RolloutResult{}, fmt.Errorf("load historical rows: %w", err)
	}
	if len(products) == 0 {
		return RolloutResult{}, errors.New("no historical rows to simulate")
	}

	cfg := s.pricingSvc.EngineConfig(ctx, req.Scope)

	rows := make([]domain.MarketState, 0, len(products))
	for _, p := range products {
		state := p.MarketState()
		if state.DayOfWeek < 0 {
			state.DayOfWeek = cfg.DefaultDayOfWeek
		}
		if state.Season < 0 {
			state.Season = cfg.DefaultSeason
		}
		rows = append(rows, state)
	}

	episode, err := pricing.NewEpisode(rows, s.pricingSvc.Scaler(), cfg, req.Seed)
	if err != nil {
		return RolloutResult{}, err
	}

	var obs domain.Observation
	if req.StartIndex >= 0 {
		obs = episode.ResetAt(req.StartIndex)
	} else {
		obs = episode.Reset()
	}

	maxSteps := req.MaxSteps
	if maxSteps <= 0 || maxSteps > episode.Len() {
		maxSteps = episode.Len()
	}

	result := RolloutResult{Steps: make([]StepRecord, 0, maxSteps)}
	adapter := s.pricingSvc.Adapter()

	for i := 0; i < maxSteps; i++ {
		action := adapter.Decide(obs, req.Deterministic)

		nextObs, reward, terminated, outcome, err := episode.Step(action)
		if err != nil {
			return RolloutResult{}, fmt.Errorf("rollout step %d: %w", i, err)
		}

		result.Steps = append(result.Steps, StepRecord{
			Step:    i,
			Reward:  reward,
			Outcome: outcome,
		})
		result.TotalReward += reward
		result.StepCount++

		if terminated {
			result.Terminated = true
			break
		}
		obs = nextObs
	}

	metrics.RolloutTotal.Inc()

	logger.Debug("rollout finished",
		"trace_id", pricing.TraceIDFromContext(ctx),
		"steps", result.StepCount,
		"total_reward", result.TotalReward,
		"terminated", result.Terminated,
	)

	return result, nil
}
