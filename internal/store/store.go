// Package store owns the two persisted collections: the product catalog and
// the sales ledger. Both live under a single RWMutex so a checkout can apply
// its stock decrements and its ledger append as one observable unit — no
// reader ever sees one without the other.
package store

import (
	"sync"

	"github.com/google/uuid"

	"tillpos/internal/model"
)

// State is the snapshot shape handed to the persistence layer. Products keep
// their catalog insertion order; sales keep ledger order.
type State struct {
	Products []model.Product `json:"products"`
	Sales    []model.Sale    `json:"sales"`
}

// Store is the in-memory data owner. Services hold the business rules; the
// store only guards invariants that belong to the data itself (stock floor,
// ledger append-only, atomic sale commit).
type Store struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
	order    []uuid.UUID // catalog insertion order
	sales    []model.Sale

	onChange func()
}

func New() *Store {
	return &Store{products: make(map[uuid.UUID]model.Product)}
}

// OnChange registers a callback fired after every committed mutation. The
// snapshot saver hooks in here; the callback runs outside the store lock.
func (s *Store) OnChange(fn func()) { s.onChange = fn }

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Restore replaces the whole state from a loaded snapshot. Called once at
// boot, before any traffic.
func (s *Store) Restore(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[uuid.UUID]model.Product, len(st.Products))
	s.order = make([]uuid.UUID, 0, len(st.Products))
	for _, p := range st.Products {
		s.products[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	s.sales = make([]model.Sale, len(st.Sales))
	copy(s.sales, st.Sales)
}

// Snapshot returns a copy of the full state for persistence.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Products: s.listProductsLocked(),
		Sales:    make([]model.Sale, len(s.sales)),
	}
	copy(st.Sales, s.sales)
	return st
}
