package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"smartPricer/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ProductHandler struct {
		validate       *validator.Validate
		productService ProductService
		timeout        time.Duration
	}

	ProductService interface {
		GetAllProducts(ctx context.Context) ([]domain.Product, error)
		GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
		CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
		UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
		DeleteProduct(ctx context.Context, id uint64) error
		RepriceProduct(ctx context.Context, id uint64) (*domain.Product, error)
		GetPrediction(ctx context.Context, id uint64) (*domain.ServingResponse, error)
	}

	ProductRequest struct {
		Name         string  `json:"name" validate:"required"`
		Description  string  `json:"description"`
		ActualPrice  float64 `json:"actual_price" validate:"required,gt=0"`
		SellingPrice float64 `json:"selling_price" validate:"required,gt=0"`
		EbayPrice    float64 `json:"ebay_price" validate:"gte=0"`
		Stock        float64 `json:"stock" validate:"gte=0"`
		DemandIndex  float64 `json:"demand_index" validate:"gte=0,lte=1"`
		UserInterest float64 `json:"user_interest" validate:"gte=0,lte=1"`
		Sales        float64 `json:"sales" validate:"gte=0"`
		DayOfWeek    *int    `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
		Season       *int    `json:"season" validate:"omitempty,gte=0,lte=3"`
		ImageURL     string  `json:"image_url"`
	}
)

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		productService: svc,
		timeout:        10 * time.Second,
	}
}

func (r ProductRequest) toDomain() domain.Product {
	p := domain.Product{
		Name:         r.Name,
		Description:  r.Description,
		ActualPrice:  r.ActualPrice,
		SellingPrice: r.SellingPrice,
		EbayPrice:    r.EbayPrice,
		Stock:        r.Stock,
		DemandIndex:  r.DemandIndex,
		UserInterest: r.UserInterest,
		Sales:        r.Sales,
		DayOfWeek:    -1,
		Season:       -1,
		ImageURL:     r.ImageURL,
	}
	if r.DayOfWeek != nil {
		p.DayOfWeek = *r.DayOfWeek
	}
	if r.Season != nil {
		p.Season = *r.Season
	}

	return p
}

func (h *ProductHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	product, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := req.toDomain()
	created, err := h.productService.CreateProduct(ctx, &product)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := req.toDomain()
	product.ID = id

	updated, err := h.productService.UpdateProduct(ctx, &product)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{"deleted": id}))
}

// Reprice re-runs the pricing decision for a stored product and persists the
// refreshed predicted price.
func (h *ProductHandler) Reprice(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	product, err := h.productService.RepriceProduct(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// GetPrediction returns the full serving response for a stored product.
func (h *ProductHandler) GetPrediction(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	resp, err := h.productService.GetPrediction(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}
