package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/store"
)

// CartService holds the one in-progress sale for this terminal. Lines keep
// insertion order (one line per product) and capture the unit price at
// add-time; quantities are bounded by current stock at every step.
type CartService interface {
	AddItem(ctx context.Context, productID uuid.UUID) (*dto.CartResponse, error)
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*dto.CartResponse, error)
	RemoveLine(ctx context.Context, productID uuid.UUID) *dto.CartResponse
	Clear(ctx context.Context) *dto.CartResponse
	View(ctx context.Context) *dto.CartResponse
	// Lines returns the raw stored lines, used by checkout.
	Lines(ctx context.Context) []model.CartLine
}

type cartService struct {
	mu    sync.Mutex
	lines []model.CartLine
	store *store.Store
}

func NewCartService(st *store.Store) CartService {
	return &cartService{store: st}
}

func (s *cartService) AddItem(ctx context.Context, productID uuid.UUID) (*dto.CartResponse, error) {
	p, ok := s.store.GetProduct(productID)
	if !ok {
		return nil, apierror.New(apierror.KindNotFound, "product not found")
	}
	if !p.Active() {
		return nil, apierror.New(apierror.KindInactiveProduct,
			fmt.Sprintf("%q is inactive and can not be sold", p.Name))
	}
	if p.Stock <= 0 {
		return nil, apierror.NewStock(apierror.KindOutOfStock,
			fmt.Sprintf("%q is out of stock", p.Name), p.ID.String(), 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity+1 > p.Stock {
			// The line is left untouched; the error reports what is
			// actually available.
			return nil, apierror.NewStock(apierror.KindInsufficientStock,
				fmt.Sprintf("only %d of %q in stock", p.Stock, p.Name), p.ID.String(), p.Stock)
		}
		s.lines[i].Quantity++
		return s.viewLocked(), nil
	}

	s.lines = append(s.lines, model.CartLine{
		ProductID: productID,
		Quantity:  1,
		UnitPrice: p.Price, // frozen at add-time
	})
	return s.viewLocked(), nil
}

// SetQuantity clamps the requested quantity into [1, stock] instead of
// rejecting out-of-range values; this asymmetry with AddItem's increment path
// is intentional. A missing line is a no-op.
func (s *cartService) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		p, ok := s.store.GetProduct(productID)
		if !ok || p.Stock < 1 {
			// Nothing sane to clamp to; checkout's re-validation will
			// surface the drift.
			return s.viewLocked(), nil
		}
		if quantity < 1 {
			quantity = 1
		}
		if quantity > p.Stock {
			quantity = p.Stock
		}
		s.lines[i].Quantity = quantity
		break
	}
	return s.viewLocked(), nil
}

func (s *cartService) RemoveLine(ctx context.Context, productID uuid.UUID) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	return s.viewLocked()
}

func (s *cartService) Clear(ctx context.Context) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.viewLocked()
}

func (s *cartService) View(ctx context.Context) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *cartService) Lines(ctx context.Context) []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// viewLocked derives the display projection: each line joined with its
// current product. Lines whose product no longer resolves are dropped
// silently. Caller must hold s.mu.
func (s *cartService) viewLocked() *dto.CartResponse {
	resp := &dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(s.lines))}
	subtotal := decimal.Zero
	profit := decimal.Zero
	itemCount := 0

	for _, l := range s.lines {
		p, ok := s.store.GetProduct(l.ProductID)
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		lineTotal := l.UnitPrice.Mul(qty)
		lineProfit := l.UnitPrice.Sub(p.Cost).Mul(qty)

		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID:  l.ProductID.String(),
			SKU:        p.SKU,
			Name:       p.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			LineTotal:  lineTotal,
			LineProfit: lineProfit,
		})
		subtotal = subtotal.Add(lineTotal)
		profit = profit.Add(lineProfit)
		itemCount += l.Quantity
	}

	resp.Totals = dto.CartTotals{Subtotal: subtotal, Profit: profit, ItemCount: itemCount}
	return resp
}
