package postgres

import (
	"context"

	"smartPricer/business/pricing"
	"smartPricer/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingConfigRepository struct {
	DB *gorm.DB
}

var _ pricing.ConfigRepository = (*PricingConfigRepository)(nil)

func NewPricingConfigRepository(db *gorm.DB) *PricingConfigRepository {
	return &PricingConfigRepository{DB: db}
}

func (r *PricingConfigRepository) GetConfig(ctx context.Context, scope string) (domain.PricingConfig, bool, error) {
	var cfg domain.PricingConfig

	err := r.DB.WithContext(ctx).
		Where("scope = ?", scope).
		First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return domain.PricingConfig{}, false, nil
	}
	if err != nil {
		return domain.PricingConfig{}, false, err
	}

	return cfg, true, nil
}

func (r *PricingConfigRepository) UpsertConfig(ctx context.Context, cfg domain.PricingConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scope"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"elasticity",
				"holding_cost_per_unit",
				"min_margin",
				"max_price",
				"max_stock",
				"default_day_of_week",
				"default_season",
			}),
		}).
		Create(&cfg).Error
}
