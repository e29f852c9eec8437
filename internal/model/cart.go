package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one in-progress sale line. It references a Product but does not
// own it; UnitPrice is captured when the line is added, so catalog price edits
// within the same session do not move lines already in the cart.
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
