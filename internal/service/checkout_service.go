package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/store"
	"tillpos/internal/worker"
)

// CheckoutService commits the current cart into a permanent Sale.
type CheckoutService interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error)
}

type checkoutService struct {
	store      *store.Store
	cart       CartService
	dispatcher *worker.Dispatcher
	operator   string
}

func NewCheckoutService(st *store.Store, cart CartService, dispatcher *worker.Dispatcher, operator string) CheckoutService {
	return &checkoutService{store: st, cart: cart, dispatcher: dispatcher, operator: operator}
}

// Checkout is all-or-nothing:
//  1. reject an empty cart
//  2. re-validate every line against current stock (it may have drifted
//     since the lines were added)
//  3. for cash, require tendered >= subtotal; card has no tendered amount
//  4. atomically decrement stock and append the frozen Sale snapshot
//  5. on success clear the cart; on any failure leave everything untouched
//
// Failures are reported synchronously for operator correction — nothing here
// is retried.
func (s *checkoutService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	// Resolve cart lines against the catalog. Lines whose product vanished
	// are dropped, mirroring the cart's derived view.
	type resolvedLine struct {
		product model.Product
		line    model.CartLine
	}
	var resolved []resolvedLine
	for _, l := range s.cart.Lines(ctx) {
		p, ok := s.store.GetProduct(l.ProductID)
		if !ok {
			continue
		}
		resolved = append(resolved, resolvedLine{product: p, line: l})
	}
	if len(resolved) == 0 {
		return nil, apierror.New(apierror.KindEmptyCart, "cart is empty")
	}

	// Pre-flight stock check, so stock drift is reported before any payment
	// validation. The commit re-checks under the store lock.
	for _, r := range resolved {
		if r.line.Quantity > r.product.Stock {
			return nil, apierror.NewStock(apierror.KindStockChanged,
				fmt.Sprintf("stock for %q changed: only %d left", r.product.Name, r.product.Stock),
				r.product.ID.String(), r.product.Stock)
		}
	}

	// Build the frozen snapshot.
	subtotal := decimal.Zero
	profit := decimal.Zero
	lines := make([]model.SaleLine, 0, len(resolved))
	for _, r := range resolved {
		qty := decimal.NewFromInt(int64(r.line.Quantity))
		lineTotal := r.line.UnitPrice.Mul(qty)
		lineProfit := r.line.UnitPrice.Sub(r.product.Cost).Mul(qty)
		lines = append(lines, model.SaleLine{
			ProductID: r.product.ID,
			SKU:       r.product.SKU,
			Name:      r.product.Name,
			Quantity:  r.line.Quantity,
			UnitPrice: r.line.UnitPrice,
			Total:     lineTotal,
			Profit:    lineProfit,
		})
		subtotal = subtotal.Add(lineTotal)
		profit = profit.Add(lineProfit)
	}

	sale := model.Sale{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Operator:  s.operator,
		Method:    req.Method,
		Lines:     lines,
		Subtotal:  subtotal,
		Profit:    profit,
	}

	if req.Method == model.PaymentCash {
		if req.Tendered == nil {
			return nil, apierror.New(apierror.KindInsufficientCash, "cash tendered amount is required")
		}
		if req.Tendered.LessThan(subtotal) {
			return nil, apierror.New(apierror.KindInsufficientCash,
				fmt.Sprintf("tendered %s is less than the total %s", req.Tendered.StringFixed(2), subtotal.StringFixed(2)))
		}
		change := req.Tendered.Sub(subtotal)
		sale.Tendered = req.Tendered
		sale.Change = &change
	}

	// Single transactional boundary: stock decrements and ledger append land
	// together or not at all.
	if err := s.store.CommitSale(sale); err != nil {
		return nil, err
	}

	s.cart.Clear(ctx)

	// Receipt generation is best-effort and off the hot path.
	if s.dispatcher != nil {
		s.dispatcher.EnqueueReceipt(sale)
	}

	return mapSale(&sale), nil
}

func mapSale(sale *model.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ProductID: l.ProductID.String(),
			SKU:       l.SKU,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
			Profit:    l.Profit,
		})
	}
	return &dto.SaleResponse{
		ID:        sale.ID.String(),
		Timestamp: sale.Timestamp.Format(time.RFC3339),
		Operator:  sale.Operator,
		Method:    sale.Method,
		Lines:     lines,
		Subtotal:  sale.Subtotal,
		Profit:    sale.Profit,
		ItemCount: sale.ItemCount(),
		Tendered:  sale.Tendered,
		Change:    sale.Change,
	}
}
