package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/store"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func newCheckout(t *testing.T) (CheckoutService, CartService, *store.Store) {
	t.Helper()
	st := store.New()
	cart := NewCartService(st)
	return NewCheckoutService(st, cart, nil, "Terminal 1"), cart, st
}

func tender(amount float64) *decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	return &d
}

func addTimes(t *testing.T, cart CartService, p model.Product, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := cart.AddItem(context.Background(), p.ID)
		require.NoError(t, err)
	}
}

// ── Cash ─────────────────────────────────────────────────────────────────────

func TestCheckout_CashHappyPath(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 3)

	sale, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(500),
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, sale.Profit.Equal(decimal.NewFromInt(180))) // (100−40)×3
	assert.Equal(t, 3, sale.ItemCount)
	assert.Equal(t, "Terminal 1", sale.Operator)
	require.NotNil(t, sale.Tendered)
	require.NotNil(t, sale.Change)
	assert.True(t, sale.Change.Equal(decimal.NewFromInt(200)))

	// Stock decremented, ledger appended, cart cleared.
	got, _ := st.GetProduct(p.ID)
	assert.Equal(t, 2, got.Stock)
	assert.Len(t, st.ListSales(), 1)
	assert.Empty(t, cart.View(context.Background()).Lines)
}

func TestCheckout_CashExactTender(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 2)

	sale, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(200),
	})
	require.NoError(t, err)
	assert.True(t, sale.Change.IsZero())
}

func TestCheckout_InsufficientCashLeavesEverythingUntouched(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 3)

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(250),
	})
	assert.True(t, apierror.Is(err, apierror.KindInsufficientCash))

	got, _ := st.GetProduct(p.ID)
	assert.Equal(t, 5, got.Stock)
	assert.Empty(t, st.ListSales())
	assert.Len(t, cart.View(context.Background()).Lines, 1)
}

func TestCheckout_CashWithoutTendered(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 1)

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{Method: model.PaymentCash})
	assert.True(t, apierror.Is(err, apierror.KindInsufficientCash))
}

// ── Card ─────────────────────────────────────────────────────────────────────

func TestCheckout_CardHasNoTenderedOrChange(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 2)

	sale, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCard,
		Tendered: tender(500), // ignored for card
	})
	require.NoError(t, err)
	assert.Nil(t, sale.Tendered)
	assert.Nil(t, sale.Change)
}

// ── Validation order and drift ───────────────────────────────────────────────

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, _ := newCheckout(t)
	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(100),
	})
	assert.True(t, apierror.Is(err, apierror.KindEmptyCart))
}

func TestCheckout_StockDriftAborts(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 3)

	// Stock drains after the lines were added.
	st.AdjustStock(p.ID, -4)

	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(500),
	})
	require.Error(t, err)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindStockChanged, apiErr.Kind)
	require.NotNil(t, apiErr.Stock)
	assert.Equal(t, 1, *apiErr.Stock)

	assert.Empty(t, st.ListSales())
	// The cart survives so the operator can fix the quantity.
	assert.Len(t, cart.View(context.Background()).Lines, 1)
}

func TestCheckout_StockDriftReportedBeforeCashValidation(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 3)
	st.AdjustStock(p.ID, -4)

	// Tendered is also insufficient, but drift wins.
	_, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(1),
	})
	assert.True(t, apierror.Is(err, apierror.KindStockChanged))
}

// ── Immutability ─────────────────────────────────────────────────────────────

func TestCheckout_SaleSnapshotSurvivesCatalogEdits(t *testing.T) {
	svc, cart, st := newCheckout(t)
	p := seedStoreProduct(st, "COF-001", "Coffee 250g", 100, 40, 5)
	addTimes(t, cart, p, 1)

	sale, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(100),
	})
	require.NoError(t, err)

	p.Name = "Renamed"
	p.Price = decimal.NewFromInt(999)
	st.ReplaceProduct(p)

	stored := st.ListSales()[0]
	assert.Equal(t, "Coffee 250g", stored.Lines[0].Name)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, stored.Subtotal.Equal(sale.Subtotal))
}

func TestCheckout_MultipleLines(t *testing.T) {
	svc, cart, st := newCheckout(t)
	a := seedStoreProduct(st, "A-1", "First", 100, 40, 5)
	b := seedStoreProduct(st, "B-1", "Second", 50, 30, 5)
	addTimes(t, cart, a, 2)
	addTimes(t, cart, b, 1)

	sale, err := svc.Checkout(context.Background(), dto.CheckoutRequest{
		Method:   model.PaymentCash,
		Tendered: tender(250),
	})
	require.NoError(t, err)
	require.Len(t, sale.Lines, 2)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, sale.Profit.Equal(decimal.NewFromInt(140))) // 2×60 + 1×20

	gotA, _ := st.GetProduct(a.ID)
	gotB, _ := st.GetProduct(b.ID)
	assert.Equal(t, 3, gotA.Stock)
	assert.Equal(t, 4, gotB.Stock)
}
