package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpos/internal/apierror"
	"tillpos/internal/dto"
	"tillpos/internal/store"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func newCatalog(t *testing.T) (CatalogService, *store.Store) {
	t.Helper()
	st := store.New()
	return NewCatalogService(st), st
}

func mustCreate(t *testing.T, svc CatalogService, sku, name string, price, cost float64, stock, reorder int) dto.ProductResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:     sku,
		Name:    name,
		Price:   decimal.NewFromFloat(price),
		Cost:    decimal.NewFromFloat(cost),
		Stock:   stock,
		Reorder: reorder,
	})
	require.NoError(t, err)
	return *resp
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apierror.KindValidation, apiErr.Kind)
	return apiErr.Fields
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCatalogCreate_Valid(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	assert.Equal(t, "active", p.Status)
	assert.Equal(t, 5, p.Stock)
	assert.False(t, p.LowStock)
}

func TestCatalogCreate_CollectsAllFieldErrors(t *testing.T) {
	svc, _ := newCatalog(t)
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "ab",
		Name:  "x",
		Cost:  decimal.NewFromInt(-1),
		Price: decimal.NewFromInt(-5),
	})
	fields := fieldsOf(t, err)
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "sku")
	assert.Contains(t, fields, "cost")
	assert.Contains(t, fields, "price")
}

func TestCatalogCreate_ZeroPricesAreValid(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "FREE-01", "Free sample", 0, 0, 10, 0)
	assert.True(t, p.Price.IsZero())
}

func TestCatalogCreate_DuplicateSKU_CaseInsensitive(t *testing.T) {
	svc, _ := newCatalog(t)
	mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:  "cof-001",
		Name: "Another coffee",
	})
	assert.True(t, apierror.Is(err, apierror.KindDuplicateSKU))
}

func TestCatalogCreate_DuplicateSKU_AgainstInactive(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "TEA-001", "Green tea", 8, 3, 0, 0)
	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(p.ID)))

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:  "TEA-001",
		Name: "New green tea",
	})
	assert.True(t, apierror.Is(err, apierror.KindDuplicateSKU))
}

func TestCatalogCreate_AcceptsProvidedID(t *testing.T) {
	svc, _ := newCatalog(t)
	id := uuid.NewString()
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		ID:   &id,
		SKU:  "COF-001",
		Name: "Coffee 250g",
	})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
}

func TestCatalogCreate_RejectsTakenID(t *testing.T) {
	svc, _ := newCatalog(t)
	first := mustCreate(t, svc, "AAA-1", "First", 10, 4, 5, 0)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		ID:   &first.ID,
		SKU:  "BBB-1",
		Name: "Second",
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "id")

	// The original record is untouched and listed once.
	list, err := svc.List(context.Background(), dto.ProductFilter{Status: "all"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "AAA-1", list.Data[0].SKU)
	assert.Equal(t, "First", list.Data[0].Name)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestCatalogUpdate_PatchSemantics(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	newPrice := decimal.NewFromInt(120)
	resp, err := svc.Update(context.Background(), uuid.MustParse(p.ID), dto.UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(newPrice))
	// Untouched fields survive.
	assert.Equal(t, "Coffee 250g", resp.Name)
	assert.Equal(t, 5, resp.Stock)
}

func TestCatalogUpdate_OwnSKUIsNotADuplicate(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	sku := "COF-001"
	_, err := svc.Update(context.Background(), uuid.MustParse(p.ID), dto.UpdateProductRequest{SKU: &sku})
	assert.NoError(t, err)
}

func TestCatalogUpdate_RejectsTakenSKU(t *testing.T) {
	svc, _ := newCatalog(t)
	mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)
	p := mustCreate(t, svc, "TEA-001", "Green tea", 8, 3, 4, 1)

	sku := "COF-001"
	_, err := svc.Update(context.Background(), uuid.MustParse(p.ID), dto.UpdateProductRequest{SKU: &sku})
	assert.True(t, apierror.Is(err, apierror.KindDuplicateSKU))
}

func TestCatalogUpdate_ValidatesPatchedRecord(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	name := "x"
	_, err := svc.Update(context.Background(), uuid.MustParse(p.ID), dto.UpdateProductRequest{Name: &name})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
}

func TestCatalogUpdate_KeepsConcurrentStockChanges(t *testing.T) {
	svc, st := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 50, 0)
	id := uuid.MustParse(p.ID)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			st.AdjustStock(id, -1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			price := decimal.NewFromInt(int64(100 + i))
			_, err := svc.Update(context.Background(), id, dto.UpdateProductRequest{Price: &price})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	// Every decrement survives the interleaved patches.
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Stock)
}

func TestCatalogUpdate_NotFound(t *testing.T) {
	svc, _ := newCatalog(t)
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{})
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
}

// ── AdjustStock ──────────────────────────────────────────────────────────────

func TestCatalogAdjustStock_NegativeDeltaClamps(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	resp, err := svc.AdjustStock(context.Background(), uuid.MustParse(p.ID), -100)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)
}

func TestCatalogAdjustStock_PositiveDelta(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "COF-001", "Coffee 250g", 100, 40, 5, 2)

	resp, err := svc.AdjustStock(context.Background(), uuid.MustParse(p.ID), 7)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)
}

// ── Deactivate / Reactivate ──────────────────────────────────────────────────

func TestCatalogDeactivate_RequiresZeroStockAndReorder(t *testing.T) {
	svc, _ := newCatalog(t)
	withStock := mustCreate(t, svc, "A-1", "Has stock", 10, 4, 3, 0)
	withReorder := mustCreate(t, svc, "B-1", "Has reorder", 10, 4, 0, 2)
	eligible := mustCreate(t, svc, "C-1", "Eligible", 10, 4, 0, 0)

	err := svc.Deactivate(context.Background(), uuid.MustParse(withStock.ID))
	assert.True(t, apierror.Is(err, apierror.KindIneligible))

	err = svc.Deactivate(context.Background(), uuid.MustParse(withReorder.ID))
	assert.True(t, apierror.Is(err, apierror.KindIneligible))

	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(eligible.ID)))
	got, err := svc.Get(context.Background(), uuid.MustParse(eligible.ID))
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)
}

func TestCatalogReactivate(t *testing.T) {
	svc, _ := newCatalog(t)
	p := mustCreate(t, svc, "C-1", "Eligible", 10, 4, 0, 0)
	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(p.ID)))
	require.NoError(t, svc.Reactivate(context.Background(), uuid.MustParse(p.ID)))

	got, err := svc.Get(context.Background(), uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestCatalogList_StatusFilters(t *testing.T) {
	svc, _ := newCatalog(t)
	mustCreate(t, svc, "A-1", "Active full", 10, 4, 50, 5)
	low := mustCreate(t, svc, "B-1", "Active low", 10, 4, 2, 5)
	inactive := mustCreate(t, svc, "C-1", "Retired", 10, 4, 0, 0)
	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(inactive.ID)))

	ctx := context.Background()

	active, err := svc.List(ctx, dto.ProductFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, 2, active.Total)

	lowList, err := svc.List(ctx, dto.ProductFilter{Status: "low"})
	require.NoError(t, err)
	require.Equal(t, 1, lowList.Total)
	assert.Equal(t, low.ID, lowList.Data[0].ID)

	inactiveList, err := svc.List(ctx, dto.ProductFilter{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, 1, inactiveList.Total)

	all, err := svc.List(ctx, dto.ProductFilter{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	// An inactive product at stock 0 never counts as low.
	assert.Equal(t, 1, lowList.Total)
}

func TestCatalogList_QueryMatchesSKUNameCategory(t *testing.T) {
	svc, _ := newCatalog(t)
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU: "COF-001", Name: "Coffee 250g", Category: "Beverages",
	})
	require.NoError(t, err)
	mustCreate(t, svc, "SNK-001", "Chips", 5, 2, 10, 1)

	ctx := context.Background()
	for _, q := range []string{"cof", "COFFEE", "bever"} {
		list, err := svc.List(ctx, dto.ProductFilter{Query: q})
		require.NoError(t, err)
		require.Equal(t, 1, list.Total, "query %q", q)
		assert.Equal(t, resp.ID, list.Data[0].ID)
	}

	none, err := svc.List(ctx, dto.ProductFilter{Query: "zzz"})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
}

func TestCatalogList_Pagination(t *testing.T) {
	svc, _ := newCatalog(t)
	for i := 0; i < 5; i++ {
		mustCreate(t, svc, "SKU-"+string(rune('A'+i)), "Product "+string(rune('A'+i)), 10, 4, 1, 0)
	}

	page2, err := svc.List(context.Background(), dto.ProductFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page2.Total)
	assert.Equal(t, 3, page2.TotalPages)
	require.Len(t, page2.Data, 2)
	assert.Equal(t, "SKU-C", page2.Data[0].SKU)

	past, err := svc.List(context.Background(), dto.ProductFilter{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, past.Data)
}
