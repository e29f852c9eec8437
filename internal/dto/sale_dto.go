package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CheckoutRequest commits the current cart. Tendered is required for cash and
// ignored for card.
type CheckoutRequest struct {
	Method   string           `json:"method"   validate:"required,oneof=cash card"`
	Tendered *decimal.Decimal `json:"tendered" validate:"omitempty"`
}

// SaleFilter is bound from the query string of GET /v1/sales. From/To accept
// YYYY-MM-DD or RFC 3339; a date-only To is extended to the end of that day.
type SaleFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Profit    decimal.Decimal `json:"profit"`
}

// SaleResponse mirrors the frozen ledger record. Tendered and Change are only
// present for cash sales.
type SaleResponse struct {
	ID        string             `json:"id"`
	Timestamp string             `json:"timestamp"`
	Operator  string             `json:"operator"`
	Method    string             `json:"method"`
	Lines     []SaleLineResponse `json:"lines"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Profit    decimal.Decimal    `json:"profit"`
	ItemCount int                `json:"item_count"`
	Tendered  *decimal.Decimal   `json:"tendered,omitempty"`
	Change    *decimal.Decimal   `json:"change,omitempty"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int            `json:"total"`
}
