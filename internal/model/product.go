package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus is deliberately an enum rather than a bool so future states
// (e.g. "discontinued") don't force a reinterpretation of existing data.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

// Product is the catalog record. Products are never physically deleted —
// "removing" one sets Status to inactive, which keeps historical sale lines
// resolvable.
type Product struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"` // human-facing code, unique case-insensitively across ALL products
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`

	// Stock never goes negative: all decrements floor at zero.
	Stock   int           `json:"stock"`
	Reorder int           `json:"reorder"` // low-stock threshold: stock <= reorder flags the product
	Status  ProductStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the product can be sold.
func (p *Product) Active() bool { return p.Status == StatusActive }

// LowStock reports whether the product is at or below its reorder threshold.
func (p *Product) LowStock() bool { return p.Stock <= p.Reorder }
