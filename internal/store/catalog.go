package store

import (
	"strings"

	"github.com/google/uuid"

	"tillpos/internal/model"
)

// ── Catalog side ─────────────────────────────────────────────────────────────

// InsertProduct adds a new product at the end of the catalog order. Returns
// false without mutating if the id is already taken — overwriting would
// destroy the existing record and list the survivor twice.
func (s *Store) InsertProduct(p model.Product) bool {
	s.mu.Lock()
	if _, exists := s.products[p.ID]; exists {
		s.mu.Unlock()
		return false
	}
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	s.mu.Unlock()
	s.notify()
	return true
}

// GetProduct returns a copy of the product, if present.
func (s *Store) GetProduct(id uuid.UUID) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// UpdateProduct applies mutate to the stored record inside the lock, so
// fields the mutation leaves alone (notably Stock, which checkout decrements
// concurrently) keep their current values. Returns the updated record and
// whether the id was known.
func (s *Store) UpdateProduct(id uuid.UUID, mutate func(*model.Product)) (model.Product, bool) {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return model.Product{}, false
	}
	mutate(&p)
	s.products[id] = p
	s.mu.Unlock()
	s.notify()
	return p, true
}

// ReplaceProduct overwrites an existing record in place, keeping its position
// in the catalog order. Returns false if the id is unknown.
func (s *Store) ReplaceProduct(p model.Product) bool {
	s.mu.Lock()
	_, ok := s.products[p.ID]
	if ok {
		s.products[p.ID] = p
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// AdjustStock sets stock = max(0, stock+delta). The silent floor is
// deliberate: manual adjustments clamp rather than error. Returns the new
// stock level and whether the product exists.
func (s *Store) AdjustStock(id uuid.UUID, delta int) (int, bool) {
	s.mu.Lock()
	p, ok := s.products[id]
	if !ok {
		s.mu.Unlock()
		return 0, false
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	s.products[id] = p
	newStock := p.Stock
	s.mu.Unlock()
	s.notify()
	return newStock, true
}

// SetStatus flips the product's lifecycle status. Returns false if unknown.
func (s *Store) SetStatus(id uuid.UUID, status model.ProductStatus) bool {
	s.mu.Lock()
	p, ok := s.products[id]
	if ok {
		p.Status = status
		s.products[id] = p
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// SKUExists reports whether any product other than excludeID carries the SKU,
// compared case-insensitively. Inactive products count: a retired SKU can not
// be reused.
func (s *Store) SKUExists(sku string, excludeID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID != excludeID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

// ListProducts returns copies of all products in catalog insertion order.
func (s *Store) ListProducts() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProductsLocked()
}

func (s *Store) listProductsLocked() []model.Product {
	out := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}
