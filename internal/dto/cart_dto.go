package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CartLineResponse is a derived view line: the stored cart line joined with
// the current product. Lines whose product no longer resolves are dropped
// from the view.
type CartLineResponse struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	LineProfit decimal.Decimal `json:"line_profit"`
}

type CartTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Profit    decimal.Decimal `json:"profit"`
	ItemCount int             `json:"item_count"`
}

type CartResponse struct {
	Lines  []CartLineResponse `json:"lines"`
	Totals CartTotals         `json:"totals"`
}
