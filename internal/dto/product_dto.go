package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest carries a new catalog entry. ID is optional — the UI
// may pre-assign one; otherwise the service generates it. Tags cover request
// shape only; the length/negativity rules live in the catalog service so they
// report the full per-field map in one response.
type CreateProductRequest struct {
	ID       *string         `json:"id"       validate:"omitempty,uuid"`
	SKU      string          `json:"sku"      validate:"required"`
	Name     string          `json:"name"     validate:"required"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"    validate:"min=0"`
	Reorder  int             `json:"reorder"  validate:"min=0"`
}

// UpdateProductRequest is a patch: nil fields keep their current value.
// Stock is excluded on purpose — stock moves only through the adjust endpoint
// and checkout.
type UpdateProductRequest struct {
	SKU      *string          `json:"sku"`
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
	Reorder  *int             `json:"reorder" validate:"omitempty,min=0"`
}

// AdjustStockRequest carries a signed stock delta. Zero is accepted as a
// no-op, so the field carries no validate tag.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
// Status: active (default) | inactive | low | all. Low means stock at or
// below the reorder threshold, among active products only.
type ProductFilter struct {
	Status string `form:"status,default=active"`
	Query  string `form:"q"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Reorder  int             `json:"reorder"`
	Status   string          `json:"status"`
	LowStock bool            `json:"low_stock"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
