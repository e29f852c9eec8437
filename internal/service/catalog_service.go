package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/store"
)

// CatalogService defines the business logic contract for the product catalog.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) CatalogService {
	return &catalogService{store: st}
}

// validateProductFields applies the catalog rules and collects every failing
// field, so the operator sees all problems in one response.
func validateProductFields(name, sku string, cost, price decimal.Decimal) map[string]string {
	fields := make(map[string]string)
	if len(strings.TrimSpace(name)) < 2 {
		fields["name"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(sku)) < 3 {
		fields["sku"] = "must be at least 3 characters"
	}
	if cost.IsNegative() {
		fields["cost"] = "must not be negative"
	}
	if price.IsNegative() {
		fields["price"] = "must not be negative"
	}
	return fields
}

func mapProduct(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID.String(),
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Cost:     p.Cost,
		Price:    p.Price,
		Stock:    p.Stock,
		Reorder:  p.Reorder,
		Status:   string(p.Status),
		LowStock: p.LowStock(),
	}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if fields := validateProductFields(req.Name, req.SKU, req.Cost, req.Price); len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}
	if s.store.SKUExists(req.SKU, uuid.Nil) {
		return nil, apierror.New(apierror.KindDuplicateSKU,
			fmt.Sprintf("SKU %q is already in use", req.SKU))
	}

	id := uuid.New()
	if req.ID != nil {
		parsed, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, apierror.NewValidation(map[string]string{"id": "must be a valid UUID"})
		}
		id = parsed
	}

	now := time.Now()
	p := model.Product{
		ID:        id,
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Cost:      req.Cost,
		Price:     req.Price,
		Stock:     req.Stock,
		Reorder:   req.Reorder,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !s.store.InsertProduct(p) {
		return nil, apierror.NewValidation(map[string]string{"id": "is already in use"})
	}

	resp := mapProduct(p)
	return &resp, nil
}

func (s *catalogService) Get(_ context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, ok := s.store.GetProduct(id)
	if !ok {
		return nil, apierror.New(apierror.KindNotFound, "product not found")
	}
	resp := mapProduct(p)
	return &resp, nil
}

func (s *catalogService) Update(_ context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, ok := s.store.GetProduct(id)
	if !ok {
		return nil, apierror.New(apierror.KindNotFound, "product not found")
	}

	apply := func(p *model.Product) {
		if req.SKU != nil {
			p.SKU = *req.SKU
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Cost != nil {
			p.Cost = *req.Cost
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Reorder != nil {
			p.Reorder = *req.Reorder
		}
	}

	// Validate against a patched copy before committing anything.
	apply(&p)
	if fields := validateProductFields(p.Name, p.SKU, p.Cost, p.Price); len(fields) > 0 {
		return nil, apierror.NewValidation(fields)
	}
	// Duplicate check scoped to exclude the product's own id.
	if s.store.SKUExists(p.SKU, id) {
		return nil, apierror.New(apierror.KindDuplicateSKU,
			fmt.Sprintf("SKU %q is already in use", p.SKU))
	}

	// Re-apply inside the store lock so a stock change committed since the
	// read above is not overwritten with the stale copy.
	updated, ok := s.store.UpdateProduct(id, func(cur *model.Product) {
		apply(cur)
		cur.UpdatedAt = time.Now()
	})
	if !ok {
		return nil, apierror.New(apierror.KindNotFound, "product not found")
	}

	resp := mapProduct(updated)
	return &resp, nil
}

func (s *catalogService) AdjustStock(_ context.Context, id uuid.UUID, delta int) (*dto.ProductResponse, error) {
	// The store clamps at zero rather than erroring: over-large negative
	// adjustments silently floor the stock.
	if _, ok := s.store.AdjustStock(id, delta); !ok {
		return nil, apierror.New(apierror.KindNotFound, "product not found")
	}
	p, _ := s.store.GetProduct(id)
	resp := mapProduct(p)
	return &resp, nil
}

func (s *catalogService) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := s.store.GetProduct(id)
	if !ok {
		return apierror.New(apierror.KindNotFound, "product not found")
	}
	// A product still holding stock, or still flagged for reorder, stays in
	// the active catalog.
	if p.Stock != 0 || p.Reorder != 0 {
		return apierror.New(apierror.KindIneligible,
			fmt.Sprintf("%q can only be deactivated with zero stock and zero reorder threshold (stock=%d, reorder=%d)", p.Name, p.Stock, p.Reorder))
	}
	s.store.SetStatus(id, model.StatusInactive)
	return nil
}

func (s *catalogService) Reactivate(_ context.Context, id uuid.UUID) error {
	if _, ok := s.store.GetProduct(id); !ok {
		return apierror.New(apierror.KindNotFound, "product not found")
	}
	s.store.SetStatus(id, model.StatusActive)
	return nil
}

func (s *catalogService) List(_ context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var matched []model.Product
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, p := range s.store.ListProducts() {
		switch filter.Status {
		case "all":
			// keep everything
		case "inactive":
			if p.Active() {
				continue
			}
		case "low":
			if !p.Active() || !p.LowStock() {
				continue
			}
		default: // active
			if !p.Active() {
				continue
			}
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	data := make([]dto.ProductResponse, 0, end-start)
	for _, p := range matched[start:end] {
		data = append(data, mapProduct(p))
	}
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

// matchesQuery does a case-insensitive substring match over sku, name and
// category.
func matchesQuery(p model.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.SKU), query) ||
		strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}
