package product

import (
	"context"
	"errors"
	"fmt"

	"smartPricer/domain"
	"smartPricer/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// Pricer serves one price decision for a product snapshot.
type Pricer interface {
	Predict(ctx context.Context, productID uint64, snapshot domain.MarketState, scope string) (domain.ServingResponse, error)
}

// PredictionCache caches the latest served prediction per product; optional.
type PredictionCache interface {
	Get(ctx context.Context, productID uint64) (*domain.ServingResponse, error)
	Set(ctx context.Context, productID uint64, resp domain.ServingResponse) error
}

type productService struct {
	productRepo ProductRepository
	pricer      Pricer
	cache       PredictionCache
}

func NewProductService(productRepo ProductRepository, pricer Pricer, cache PredictionCache) *productService {
	return &productService{
		productRepo: productRepo,
		pricer:      pricer,
		cache:       cache,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "id", id, "error", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.Name == "" {
		return nil, errors.New("product name is required")
	}
	if product.ActualPrice <= 0 {
		return nil, errors.New("actual price must be greater than 0")
	}
	if product.SellingPrice <= 0 {
		return nil, errors.New("selling price must be greater than 0")
	}
	if product.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	product.PredictedPrice = s.predictedPriceFor(ctx, 0, *product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created", "id", product.ID, "predicted_price", product.PredictedPrice)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, errors.New("product ID is required")
	}
	if product.Name == "" {
		return nil, errors.New("product name is required")
	}
	if product.ActualPrice <= 0 {
		return nil, errors.New("actual price must be greater than 0")
	}
	if product.SellingPrice <= 0 {
		return nil, errors.New("selling price must be greater than 0")
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		return nil, errors.New("product not found")
	}

	// attribute changes invalidate the stored prediction, recompute it
	product.PredictedPrice = s.predictedPriceFor(ctx, product.ID, *product)

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "id", product.ID, "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted", "id", id)

	return nil
}

// RepriceProduct re-runs the prediction for a stored product and persists the
// refreshed predicted price.
func (s *productService) RepriceProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	resp, err := s.pricer.Predict(ctx, id, product.MarketState(), "")
	if err != nil {
		logger.Error("failed to reprice product", "id", id, "error", err)
		return nil, fmt.Errorf("failed to reprice product: %w", err)
	}

	product.PredictedPrice = resp.PredictedPrice
	if err := s.productRepo.Update(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to store repriced product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, resp); err != nil {
			logger.Warn("failed to cache prediction", "id", id, "error", err)
		}
	}

	return &product, nil
}

// GetPrediction returns the full serving response for a stored product,
// read-through cached when a cache is configured.
func (s *productService) GetPrediction(ctx context.Context, id uint64) (*domain.ServingResponse, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	resp, err := s.pricer.Predict(ctx, id, product.MarketState(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to predict price: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, resp); err != nil {
			logger.Warn("failed to cache prediction", "id", id, "error", err)
		}
	}

	return &resp, nil
}

// predictedPriceFor mirrors the storefront behavior: when the prediction
// fails the current selling price is kept as the fallback.
func (s *productService) predictedPriceFor(ctx context.Context, id uint64, p domain.Product) float64 {
	resp, err := s.pricer.Predict(ctx, id, p.MarketState(), "")
	if err != nil {
		logger.Warn("prediction failed, falling back to selling price",
			"id", id,
			"error", err,
		)
		return p.SellingPrice
	}

	return resp.PredictedPrice
}
