package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/store"
)

const rankingSize = 5

// ReportService derives summaries and rankings from the sales ledger, joined
// against the current catalog. Everything is recomputed per query — the
// ledger is small enough that incremental maintenance would only add
// invariants to break.
type ReportService interface {
	Summary(ctx context.Context, filter dto.ReportFilter) (*dto.SummaryResponse, error)
	Performance(ctx context.Context, filter dto.ReportFilter) (*dto.PerformanceResponse, error)
	Today(ctx context.Context) *dto.TodayResponse
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
}

type reportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) ReportService {
	return &reportService{store: st}
}

// parseBound accepts YYYY-MM-DD or RFC 3339. A date-only upper bound is
// extended to the end of that local day so "to=2024-01-10" includes a sale at
// 23:50. Empty input means unbounded.
func parseBound(value, field string, end bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		if end {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, apierror.NewValidation(map[string]string{field: "must be YYYY-MM-DD or RFC 3339"})
}

// filterByDateRange keeps sales inside [from, to], inclusive on both bounds.
func filterByDateRange(sales []model.Sale, from, to *time.Time) []model.Sale {
	out := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if from != nil && s.Timestamp.Before(*from) {
			continue
		}
		if to != nil && s.Timestamp.After(*to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (s *reportService) filtered(filter dto.ReportFilter) ([]model.Sale, error) {
	from, err := parseBound(filter.From, "from", false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(filter.To, "to", true)
	if err != nil {
		return nil, err
	}
	return filterByDateRange(s.store.ListSales(), from, to), nil
}

func summarize(sales []model.Sale) dto.SummaryResponse {
	sum := dto.SummaryResponse{Revenue: decimal.Zero, Profit: decimal.Zero}
	for _, sale := range sales {
		sum.Count++
		sum.ItemCount += sale.ItemCount()
		sum.Revenue = sum.Revenue.Add(sale.Subtotal)
		sum.Profit = sum.Profit.Add(sale.Profit)
	}
	return sum
}

func (s *reportService) Summary(_ context.Context, filter dto.ReportFilter) (*dto.SummaryResponse, error) {
	sales, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}
	sum := summarize(sales)
	return &sum, nil
}

func (s *reportService) Performance(_ context.Context, filter dto.ReportFilter) (*dto.PerformanceResponse, error) {
	sales, err := s.filtered(filter)
	if err != nil {
		return nil, err
	}

	// Aggregate per product in first-sold order, so ranking ties resolve to
	// stable input order.
	index := make(map[uuid.UUID]int)
	var aggregates []dto.ProductPerformance
	for _, sale := range sales {
		for _, line := range sale.Lines {
			i, ok := index[line.ProductID]
			if !ok {
				i = len(aggregates)
				index[line.ProductID] = i
				aggregates = append(aggregates, dto.ProductPerformance{
					ProductID: line.ProductID.String(),
					Revenue:   decimal.Zero,
					Profit:    decimal.Zero,
				})
			}
			aggregates[i].Quantity += line.Quantity
			aggregates[i].Revenue = aggregates[i].Revenue.Add(line.Total)
			aggregates[i].Profit = aggregates[i].Profit.Add(line.Profit)
		}
	}

	// Join display data from the current catalog. Deactivation is soft, so
	// the placeholder only shows when a snapshot lost a product.
	for i := range aggregates {
		id, _ := uuid.Parse(aggregates[i].ProductID)
		if p, ok := s.store.GetProduct(id); ok {
			aggregates[i].SKU = p.SKU
			aggregates[i].Name = p.Name
		} else {
			aggregates[i].Name = "(deleted product)"
		}
	}

	top := make([]dto.ProductPerformance, len(aggregates))
	copy(top, aggregates)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Profit.GreaterThan(top[j].Profit) })

	bottom := make([]dto.ProductPerformance, len(aggregates))
	copy(bottom, aggregates)
	sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].Profit.LessThan(bottom[j].Profit) })

	return &dto.PerformanceResponse{
		Top:    truncateRanking(top),
		Bottom: truncateRanking(bottom),
	}, nil
}

func truncateRanking(ranking []dto.ProductPerformance) []dto.ProductPerformance {
	if len(ranking) > rankingSize {
		return ranking[:rankingSize]
	}
	return ranking
}

// Today reports the current local calendar day.
func (s *reportService) Today(_ context.Context) *dto.TodayResponse {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := from.Add(24*time.Hour - time.Millisecond)

	sales := filterByDateRange(s.store.ListSales(), &from, &to)
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *mapSale(&sales[i]))
	}
	return &dto.TodayResponse{
		Date:    from.Format("2006-01-02"),
		Sales:   data,
		Summary: summarize(sales),
	}
}

func (s *reportService) ListSales(_ context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	from, err := parseBound(filter.From, "from", false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(filter.To, "to", true)
	if err != nil {
		return nil, err
	}

	sales := filterByDateRange(s.store.ListSales(), from, to)
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *mapSale(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: len(data)}, nil
}

func (s *reportService) GetSale(_ context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, ok := s.store.GetSale(id)
	if !ok {
		return nil, apierror.New(apierror.KindNotFound, "sale not found")
	}
	return mapSale(&sale), nil
}
