package dto

import "github.com/shopspring/decimal"

// ReportFilter is bound from the query string of the report endpoints.
// Bounds are inclusive; an absent bound is unbounded on that side.
type ReportFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// SummaryResponse aggregates the sales that fall inside the filter window.
type SummaryResponse struct {
	Count     int             `json:"count"`
	ItemCount int             `json:"item_count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// ProductPerformance is one product's aggregate across the filtered sales,
// joined with its current catalog display data.
type ProductPerformance struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// PerformanceResponse carries the profit rankings: Top descending, Bottom
// ascending, at most five entries each, ties kept in first-sold order.
type PerformanceResponse struct {
	Top    []ProductPerformance `json:"top"`
	Bottom []ProductPerformance `json:"bottom"`
}

// TodayResponse is the current local calendar day's activity.
type TodayResponse struct {
	Date    string          `json:"date"`
	Sales   []SaleResponse  `json:"sales"`
	Summary SummaryResponse `json:"summary"`
}
