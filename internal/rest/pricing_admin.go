package rest

import (
	"context"
	"net/http"
	"strconv"

	"smartPricer/business/pricing"
	"smartPricer/domain"

	"github.com/labstack/echo/v4"
)

type DecisionLogReader interface {
	FindByProduct(ctx context.Context, productID uint64, limit int) ([]domain.PriceDecision, error)
}

type PricingAdminHandler struct {
	cfgRepo      pricing.ConfigRepository
	decisionRepo DecisionLogReader
}

func NewPricingAdminHandler(cfgRepo pricing.ConfigRepository, decisionRepo DecisionLogReader) *PricingAdminHandler {
	return &PricingAdminHandler{
		cfgRepo:      cfgRepo,
		decisionRepo: decisionRepo,
	}
}

// GET /api/v1/admin/pricing/config?scope=default
func (h *PricingAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()

	scope := c.QueryParam("scope")
	if scope == "" {
		scope = pricing.ConfigScopeDefault
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/pricing/config
// body: PricingConfig JSON
func (h *PricingAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.PricingConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Scope == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "scope is required",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// GET /api/v1/admin/pricing/decisions?product_id=123&limit=50
func (h *PricingAdminHandler) GetDecisions(c echo.Context) error {
	ctx := c.Request().Context()

	productIDStr := c.QueryParam("product_id")
	if productIDStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "product_id is required",
		})
	}
	productID, err := strconv.ParseUint(productIDStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid product_id",
		})
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	decisions, err := h.decisionRepo.FindByProduct(ctx, productID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, decisions)
}
