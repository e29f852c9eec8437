package service

import (
	"context"
	"strconv"
	"time"

	"tillpos/internal/model"
	"tillpos/internal/store"
)

// ExportService exposes the catalog and the ledger as plain row sequences for
// the CSV export endpoints. The first row is the header.
type ExportService interface {
	SalesRows(ctx context.Context) [][]string
	ProductRows(ctx context.Context) [][]string
}

type exportService struct {
	store *store.Store
}

func NewExportService(st *store.Store) ExportService {
	return &exportService{store: st}
}

func (s *exportService) SalesRows(_ context.Context) [][]string {
	sales := s.store.ListSales()
	rows := make([][]string, 0, len(sales)+1)
	rows = append(rows, []string{"id", "timestamp", "operator", "method", "total", "profit"})
	for _, sale := range sales {
		rows = append(rows, []string{
			sale.ID.String(),
			sale.Timestamp.Format(time.RFC3339),
			sale.Operator,
			sale.Method,
			sale.Subtotal.StringFixed(2),
			sale.Profit.StringFixed(2),
		})
	}
	return rows
}

func (s *exportService) ProductRows(_ context.Context) [][]string {
	products := s.store.ListProducts()
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, []string{"sku", "name", "category", "cost", "price", "stock", "reorder", "active"})
	for _, p := range products {
		rows = append(rows, []string{
			p.SKU,
			p.Name,
			p.Category,
			p.Cost.StringFixed(2),
			p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.Reorder),
			strconv.FormatBool(p.Status == model.StatusActive),
		})
	}
	return rows
}
