package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// SaleLine is a frozen copy of a cart line at checkout time. SKU, name, price
// and profit are snapshotted so later catalog edits never rewrite history.
type SaleLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Profit    decimal.Decimal `json:"profit"` // (unit price − cost at checkout) × quantity
}

// Sale is one completed checkout, immutable once appended to the ledger.
// Tendered and Change are only present for cash payments; for card they are
// absent, not zero.
type Sale struct {
	ID        uuid.UUID        `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Operator  string           `json:"operator"` // terminal/operator label from config
	Method    string           `json:"method"`   // cash | card
	Lines     []SaleLine       `json:"lines"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Profit    decimal.Decimal  `json:"profit"`
	Tendered  *decimal.Decimal `json:"tendered,omitempty"`
	Change    *decimal.Decimal `json:"change,omitempty"`
}

// ItemCount is the total number of units across all lines.
func (s *Sale) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}
