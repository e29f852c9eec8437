package store

import (
	"fmt"

	"github.com/google/uuid"

	"tillpos/internal/apierror"
	"tillpos/internal/model"
)

// ── Ledger side ──────────────────────────────────────────────────────────────

// CommitSale is the checkout's transactional boundary: it re-validates every
// line against current stock, decrements stock for all referenced products,
// and appends the sale to the ledger — all inside one critical section. If
// any line exceeds current stock the whole commit aborts with a stock_changed
// error and nothing mutates.
func (s *Store) CommitSale(sale model.Sale) error {
	s.mu.Lock()

	for _, l := range sale.Lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			s.mu.Unlock()
			return apierror.NewStock(apierror.KindStockChanged,
				fmt.Sprintf("product %q is no longer in the catalog", l.Name),
				l.ProductID.String(), 0)
		}
		if l.Quantity > p.Stock {
			s.mu.Unlock()
			return apierror.NewStock(apierror.KindStockChanged,
				fmt.Sprintf("stock for %q changed: only %d left", p.Name, p.Stock),
				p.ID.String(), p.Stock)
		}
	}

	for _, l := range sale.Lines {
		p := s.products[l.ProductID]
		p.Stock -= l.Quantity
		if p.Stock < 0 {
			p.Stock = 0
		}
		s.products[l.ProductID] = p
	}
	s.sales = append(s.sales, sale)

	s.mu.Unlock()
	s.notify()
	return nil
}

// GetSale returns a sale by id.
func (s *Store) GetSale(id uuid.UUID) (model.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return sale, true
		}
	}
	return model.Sale{}, false
}

// ListSales returns the ledger in append order. Sales are immutable once
// created, so the shallow copy is safe to share.
func (s *Store) ListSales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Counts returns catalog and ledger sizes for the health check.
func (s *Store) Counts() (products, sales int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), len(s.sales)
}
