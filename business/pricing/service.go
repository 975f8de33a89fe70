package pricing

import (
	"context"
	"fmt"

	"smartPricer/domain"
	"smartPricer/pkg/logger"

	"gorm.io/datatypes"
)

// DecisionRepository persists served decisions for later analysis.
type DecisionRepository interface {
	SaveDecision(ctx context.Context, decision domain.PriceDecision) error
}

// Service is the serving façade: normalize a product snapshot, ask the policy
// for an adjustment, sanitize it through the rule engine and estimate the
// outcome. Purely functional given the loaded artifacts and the snapshot; the
// only side effect is the best-effort decision log.
type Service struct {
	scaler       *Scaler
	adapter      *DecisionAdapter
	cfgRepo      ConfigRepository
	decisionRepo DecisionRepository
	defaultCfg   EngineConfig
}

func NewService(
	scaler *Scaler,
	adapter *DecisionAdapter,
	cfgRepo ConfigRepository,
	decisionRepo DecisionRepository,
	defaultCfg EngineConfig,
) *Service {
	return &Service{
		scaler:       scaler,
		adapter:      adapter,
		cfgRepo:      cfgRepo,
		decisionRepo: decisionRepo,
		defaultCfg:   defaultCfg,
	}
}

// Scaler exposes the loaded artifact to sibling services (simulation).
func (s *Service) Scaler() *Scaler {
	return s.scaler
}

// Adapter exposes the decision adapter to sibling services (simulation).
func (s *Service) Adapter() *DecisionAdapter {
	return s.adapter
}

// EngineConfig resolves the effective config for a scope: stored override on
// top of the in-code defaults, falling back to the "default" scope row.
func (s *Service) EngineConfig(ctx context.Context, scope string) EngineConfig {
	if s.cfgRepo == nil {
		return s.defaultCfg
	}

	cfg := s.defaultCfg

	if dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, ConfigScopeDefault); err == nil && ok {
		cfg = fromDomain(cfg, dbCfg)
	}

	if scope != "" && scope != ConfigScopeDefault {
		if dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, scope); err == nil && ok {
			cfg = fromDomain(cfg, dbCfg)
		}
	}

	return cfg
}

// Predict serves one price decision for a product snapshot. A negative
// DayOfWeek or Season means "not provided" and is filled from the effective
// config's defaults. productID of 0 logs an ad-hoc (catalog-less) request.
func (s *Service) Predict(
	ctx context.Context,
	productID uint64,
	snapshot domain.MarketState,
	scope string,
) (domain.ServingResponse, error) {

	if err := ctx.Err(); err != nil {
		return domain.ServingResponse{}, fmt.Errorf("context error: %w", err)
	}

	cfg := s.EngineConfig(ctx, scope)

	if snapshot.DayOfWeek < 0 {
		snapshot.DayOfWeek = cfg.DefaultDayOfWeek
	}
	if snapshot.Season < 0 {
		snapshot.Season = cfg.DefaultSeason
	}

	obs := s.scaler.Normalize(snapshot)
	adjustment := s.adapter.Decide(obs, true)

	preRulePrice := snapshot.SellingPrice * (1.0 + adjustment)
	finalPrice, ruleApplied := ApplyRules(preRulePrice, snapshot)

	// profit is estimated against the sanitized price, not the raw proposal
	expectedSales, profit := EstimateSalesProfit(
		snapshot.SellingPrice, finalPrice,
		snapshot.DemandIndex, snapshot.UserInterest,
		snapshot.Sales,
		cfg.Elasticity,
		snapshot.ActualPrice,
	)

	resp := domain.ServingResponse{
		ActionAdjustment:      round4(adjustment),
		PredictedPricePreRule: round2(preRulePrice),
		PredictedPrice:        finalPrice,
		RuleApplied:           ruleApplied,
		ExpectedSalesEstimate: round2(expectedSales),
		EstimatedProfit:       round2(profit),
	}

	s.logDecision(ctx, productID, snapshot, scope, resp)

	return resp, nil
}

func (s *Service) logDecision(
	ctx context.Context,
	productID uint64,
	snapshot domain.MarketState,
	scope string,
	resp domain.ServingResponse,
) {
	if s.decisionRepo == nil {
		return
	}

	decision := domain.PriceDecision{
		ProductID:             productID,
		ActionAdjustment:      resp.ActionAdjustment,
		PredictedPricePreRule: resp.PredictedPricePreRule,
		PredictedPrice:        resp.PredictedPrice,
		RuleApplied:           resp.RuleApplied,
		ExpectedSales:         resp.ExpectedSalesEstimate,
		EstimatedProfit:       resp.EstimatedProfit,
		Context: datatypes.JSONMap{
			"trace_id":      TraceIDFromContext(ctx),
			"scope":         scope,
			"selling_price": snapshot.SellingPrice,
			"ebay_price":    snapshot.EbayPrice,
			"stock":         snapshot.Stock,
			"demand_index":  snapshot.DemandIndex,
			"user_interest": snapshot.UserInterest,
		},
	}

	if err := s.decisionRepo.SaveDecision(ctx, decision); err != nil {
		logger.Warn("failed to log price decision",
			"product_id", productID,
			"error", err,
		)
	}
}
