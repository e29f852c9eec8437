// Package apierror provides the structured error envelope shared by the
// service and HTTP layers. Every business failure is reported as an *Error
// carrying a machine-readable Kind plus a human-readable detail, so handlers
// can map it to a status code without string matching and without leaking
// internal details to clients.
package apierror

import "net/http"

// Kind enumerates every recoverable business failure. None of these are fatal
// to the process; all are correctable by the operator.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindDuplicateSKU      Kind = "duplicate_sku"
	KindNotFound          Kind = "not_found"
	KindIneligible        Kind = "ineligible_for_deactivation"
	KindInactiveProduct   Kind = "inactive_product"
	KindOutOfStock        Kind = "out_of_stock"
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptyCart         Kind = "empty_cart"
	KindStockChanged      Kind = "stock_changed"
	KindInsufficientCash  Kind = "insufficient_cash"

	// KindInternal is the HTTP layer's envelope for unexpected failures; it
	// is not part of the business taxonomy and carries no internal detail.
	KindInternal Kind = "internal"

	// KindRateLimited is emitted by the rate-limiting middleware only.
	KindRateLimited Kind = "rate_limited"
)

// Error is the canonical error envelope. Fields is only set for validation
// failures; ProductID and Stock carry context for the stock-related kinds
// (Stock is the quantity actually available at the time of the failure).
type Error struct {
	Kind      Kind              `json:"kind"`
	Detail    string            `json:"detail"`
	Fields    map[string]string `json:"fields,omitempty"`
	ProductID string            `json:"product_id,omitempty"`
	Stock     *int              `json:"stock,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// NewValidation wraps per-field failures detected by the catalog rules.
func NewValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "validation failed", Fields: fields}
}

// NewStock builds a stock-related error carrying the offending product and
// the quantity actually available.
func NewStock(kind Kind, detail, productID string, available int) *Error {
	return &Error{Kind: kind, Detail: detail, ProductID: productID, Stock: &available}
}

// Status maps an error kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateSKU, KindStockChanged:
		return http.StatusConflict
	case KindInternal:
		return http.StatusInternalServerError
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
