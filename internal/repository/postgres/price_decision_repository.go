package postgres

import (
	"context"
	"fmt"

	"smartPricer/domain"

	"gorm.io/gorm"
)

type PriceDecisionRepository struct {
	DB *gorm.DB
}

func NewPriceDecisionRepository(db *gorm.DB) *PriceDecisionRepository {
	return &PriceDecisionRepository{DB: db}
}

func (r *PriceDecisionRepository) SaveDecision(ctx context.Context, decision domain.PriceDecision) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&decision).Error; err != nil {
		return fmt.Errorf("failed to save price decision: %w", err)
	}

	return nil
}

// FindByProduct returns the most recent decisions for one product, newest first.
func (r *PriceDecisionRepository) FindByProduct(ctx context.Context, productID uint64, limit int) ([]domain.PriceDecision, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	var decisions []domain.PriceDecision
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&decisions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query price decisions: %w", err)
	}

	return decisions, nil
}
