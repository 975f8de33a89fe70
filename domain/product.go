package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     description     TEXT,
//     actual_price    NUMERIC NOT NULL,
//     selling_price   NUMERIC NOT NULL,
//     ebay_price      NUMERIC,
//     stock           NUMERIC NOT NULL,
//     demand_index    NUMERIC,
//     user_interest   NUMERIC,
//     sales           NUMERIC,
//     day_of_week     INT,
//     season          INT,
//     image_url       TEXT,
//     predicted_price NUMERIC DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"column:name;type:text" json:"name"`
	Description  string  `gorm:"column:description;type:text" json:"description"`
	ActualPrice  float64 `gorm:"column:actual_price;type:numeric" json:"actual_price"`
	SellingPrice float64 `gorm:"column:selling_price;type:numeric" json:"selling_price"`
	EbayPrice    float64 `gorm:"column:ebay_price;type:numeric" json:"ebay_price"`
	Stock        float64 `gorm:"column:stock;type:numeric" json:"stock"`
	DemandIndex  float64 `gorm:"column:demand_index;type:numeric" json:"demand_index"`
	UserInterest float64 `gorm:"column:user_interest;type:numeric" json:"user_interest"`
	Sales        float64 `gorm:"column:sales;type:numeric" json:"sales"`
	DayOfWeek    int     `gorm:"column:day_of_week" json:"day_of_week"`
	Season       int     `gorm:"column:season" json:"season"`
	// display only
	ImageURL string `gorm:"column:image_url;type:text" json:"image_url"`

	PredictedPrice float64   `gorm:"column:predicted_price;type:numeric;default:0" json:"predicted_price"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// MarketState maps the catalog row onto the pricing feature record.
func (p Product) MarketState() MarketState {
	return MarketState{
		ActualPrice:  p.ActualPrice,
		SellingPrice: p.SellingPrice,
		EbayPrice:    p.EbayPrice,
		Stock:        p.Stock,
		DemandIndex:  p.DemandIndex,
		UserInterest: p.UserInterest,
		Sales:        p.Sales,
		DayOfWeek:    p.DayOfWeek,
		Season:       p.Season,
	}
}
