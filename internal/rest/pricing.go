package rest

import (
	"context"
	"net/http"
	"time"

	"smartPricer/domain"
	"smartPricer/pkg/logger"
	"smartPricer/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PricingHandler struct {
		validate       *validator.Validate
		pricingService PricingService
	}

	PricingService interface {
		Predict(ctx context.Context, productID uint64, snapshot domain.MarketState, scope string) (domain.ServingResponse, error)
	}

	// PredictRequest carries the nine feature fields; day_of_week and season
	// are optional and default from the effective pricing config.
	PredictRequest struct {
		ActualPrice  float64 `json:"actual_price" validate:"required,gt=0"`
		SellingPrice float64 `json:"selling_price" validate:"required,gt=0"`
		EbayPrice    float64 `json:"ebay_price" validate:"gte=0"`
		Stock        float64 `json:"stock" validate:"gte=0"`
		DemandIndex  float64 `json:"demand_index" validate:"gte=0,lte=1"`
		UserInterest float64 `json:"user_interest" validate:"gte=0,lte=1"`
		Sales        float64 `json:"sales" validate:"gte=0"`
		DayOfWeek    *int    `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
		Season       *int    `json:"season" validate:"omitempty,gte=0,lte=3"`
		Scope        string  `json:"scope"`
	}
)

func NewPricingHandler(svc PricingService) *PricingHandler {
	return &PricingHandler{
		validate:       validator.New(),
		pricingService: svc,
	}
}

// Predict serves an ad-hoc price decision for a market snapshot.
func (h *PricingHandler) Predict(c echo.Context) error {
	start := time.Now()

	var req PredictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	snapshot := domain.MarketState{
		ActualPrice:  req.ActualPrice,
		SellingPrice: req.SellingPrice,
		EbayPrice:    req.EbayPrice,
		Stock:        req.Stock,
		DemandIndex:  req.DemandIndex,
		UserInterest: req.UserInterest,
		Sales:        req.Sales,
		// negative marks "not provided" for the service-side defaulting
		DayOfWeek: -1,
		Season:    -1,
	}
	if req.DayOfWeek != nil {
		snapshot.DayOfWeek = *req.DayOfWeek
	}
	if req.Season != nil {
		snapshot.Season = *req.Season
	}

	resp, err := h.pricingService.Predict(c.Request().Context(), 0, snapshot, req.Scope)
	if err != nil {
		logger.Error("prediction failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.PredictTotal.Inc()
	metrics.RuleAppliedTotal.WithLabelValues(resp.RuleApplied).Inc()
	metrics.PredictLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}
