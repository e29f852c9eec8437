package persist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/model"
	"tillpos/internal/store"
)

// Seed returns a small demo catalog so a fresh install has something to sell.
func Seed() store.State {
	now := time.Now()
	mk := func(sku, name, category string, cost, price string, stock, reorder int) model.Product {
		return model.Product{
			ID:        uuid.New(),
			SKU:       sku,
			Name:      name,
			Category:  category,
			Cost:      decimal.RequireFromString(cost),
			Price:     decimal.RequireFromString(price),
			Stock:     stock,
			Reorder:   reorder,
			Status:    model.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return store.State{
		Products: []model.Product{
			mk("COF-250", "Ground Coffee 250g", "Beverages", "3.10", "5.90", 24, 6),
			mk("MLK-1L", "Whole Milk 1L", "Dairy", "0.80", "1.45", 40, 12),
			mk("BRD-WHT", "White Bread Loaf", "Bakery", "0.95", "2.20", 15, 5),
			mk("CHO-70", "Dark Chocolate 70%", "Snacks", "1.60", "3.50", 30, 8),
			mk("WTR-500", "Mineral Water 500ml", "Beverages", "0.25", "0.90", 60, 20),
			mk("EGG-12", "Eggs (dozen)", "Dairy", "1.70", "3.10", 18, 6),
		},
	}
}
