package rest

import (
	"context"
	"net/http"
	"time"

	"smartPricer/business/simulation"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SimulationHandler struct {
		validate          *validator.Validate
		simulationService SimulationService
		timeout           time.Duration
	}

	SimulationService interface {
		Run(ctx context.Context, req simulation.RolloutRequest) (simulation.RolloutResult, error)
	}

	RolloutRequest struct {
		Seed          int64  `json:"seed"`
		StartIndex    *int   `json:"start_index" validate:"omitempty,gte=0"`
		MaxSteps      int    `json:"max_steps" validate:"gte=0"`
		Deterministic *bool  `json:"deterministic"`
		Scope         string `json:"scope"`
	}
)

func NewSimulationHandler(svc SimulationService) *SimulationHandler {
	return &SimulationHandler{
		validate:          validator.New(),
		simulationService: svc,
		timeout:           30 * time.Second,
	}
}

// Rollout runs one evaluation episode over the stored catalog and returns the
// per-step reward ledger.
func (h *SimulationHandler) Rollout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var req RolloutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	svcReq := simulation.RolloutRequest{
		Seed:          req.Seed,
		StartIndex:    -1,
		MaxSteps:      req.MaxSteps,
		Deterministic: true,
		Scope:         req.Scope,
	}
	if req.StartIndex != nil {
		svcReq.StartIndex = *req.StartIndex
	}
	if req.Deterministic != nil {
		svcReq.Deterministic = *req.Deterministic
	}

	result, err := h.simulationService.Run(ctx, svcReq)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
