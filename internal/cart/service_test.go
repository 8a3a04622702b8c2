package cart

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sirawit-s/shop-backend/internal/product"
)

const sid = "test-session"

func seedProducts() *product.InMemoryRepository {
	return product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10, Category: "Electronics"},
		{ID: 2, Name: "T-Shirt", Price: decimal.RequireFromString("29.99"), Stock: 50, Category: "Clothing"},
		{ID: 3, Name: "Headphones", Price: decimal.RequireFromString("199.99"), Stock: 2, Category: "Electronics"},
	})
}

func newService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, seedProducts()), store
}

func TestAdd_UnknownProduct(t *testing.T) {
	service, _ := newService()

	if _, _, err := service.Add(sid, 99, 1); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestAdd_InsufficientStockLeavesCartUnchanged(t *testing.T) {
	service, store := newService()

	if _, _, err := service.Add(sid, 3, 1); err != nil {
		t.Fatalf("initial add failed: %v", err)
	}
	before, _ := store.Load(sid)

	_, _, err := service.Add(sid, 3, 5)
	if err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	after, _ := store.Load(sid)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("cart changed on failed add: before=%v after=%v", before, after)
	}
}

func TestAdd_SumsQuantities(t *testing.T) {
	service, store := newService()

	if _, _, err := service.Add(sid, 1, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, _, err := service.Add(sid, 1, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, _ := store.Load(sid)
	if items["1"] != 5 {
		t.Fatalf("expected quantity 5, got %d", items["1"])
	}
}

func TestAdd_StockCheckedPerCallOnly(t *testing.T) {
	// each call is validated against stock in isolation; the combined cart
	// quantity may exceed stock and only checkout will catch it
	service, store := newService()

	if _, _, err := service.Add(sid, 3, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, _, err := service.Add(sid, 3, 2); err != nil {
		t.Fatalf("expected per-call check to pass, got %v", err)
	}

	items, _ := store.Load(sid)
	if items["3"] != 4 {
		t.Fatalf("expected quantity 4, got %d", items["3"])
	}
}

func TestAdd_ReturnsTotal(t *testing.T) {
	service, _ := newService()

	_, total, err := service.Add(sid, 1, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	want := decimal.RequireFromString("1999.98")
	if !total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, total)
	}
}

func TestUpdate_NotInCart(t *testing.T) {
	service, _ := newService()

	if _, err := service.Update(sid, 1, 2); err != ErrNotInCart {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
}

func TestUpdate_ReplacesQuantity(t *testing.T) {
	service, store := newService()

	service.Add(sid, 2, 5)
	total, err := service.Update(sid, 2, 2)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	items, _ := store.Load(sid)
	if items["2"] != 2 {
		t.Fatalf("expected quantity 2, got %d", items["2"])
	}
	want := decimal.RequireFromString("59.98")
	if !total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, total)
	}
}

func TestUpdate_ZeroRemovesEntry(t *testing.T) {
	service, store := newService()

	service.Add(sid, 2, 5)
	if _, err := service.Update(sid, 2, 0); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	items, _ := store.Load(sid)
	if _, ok := items["2"]; ok {
		t.Fatalf("expected entry removed, got %v", items)
	}
}

func TestUpdate_InsufficientStock(t *testing.T) {
	service, _ := newService()

	service.Add(sid, 3, 1)
	if _, err := service.Update(sid, 3, 5); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	service, _ := newService()

	service.Add(sid, 1, 1)
	if _, err := service.Remove(sid, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	total, err := service.Remove(sid, 1)
	if err != nil {
		t.Fatalf("second remove errored: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}

	if _, err := service.Remove(sid, 42); err != nil {
		t.Fatalf("removing absent product errored: %v", err)
	}
}

func TestView_SkipsDeletedProducts(t *testing.T) {
	products := seedProducts()
	store := NewMemoryStore()
	service := NewService(store, products)

	service.Add(sid, 1, 1)
	service.Add(sid, 2, 2)
	if err := products.Delete(2); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	view, err := service.View(sid)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	if len(view.Items) != 1 || view.Items[0].ProductID != "1" {
		t.Fatalf("expected only product 1, got %+v", view.Items)
	}
	// the stale entry stays in the stored cart even though the view skips it
	if view.ItemCount != 2 {
		t.Fatalf("expected item_count 2, got %d", view.ItemCount)
	}
	items, _ := store.Load(sid)
	if _, ok := items["2"]; !ok {
		t.Fatalf("stale entry was removed from stored cart: %v", items)
	}
	if !view.Total.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("expected total 999.99, got %s", view.Total)
	}
}

func TestView_TotalsAndSubtotals(t *testing.T) {
	service, _ := newService()

	service.Add(sid, 1, 2)
	service.Add(sid, 2, 1)

	view, err := service.View(sid)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.ItemCount != 2 || len(view.Items) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Items[0].ProductID != "1" || !view.Items[0].Subtotal.Equal(decimal.RequireFromString("1999.98")) {
		t.Fatalf("unexpected first item: %+v", view.Items[0])
	}
	if !view.Total.Equal(decimal.RequireFromString("2029.97")) {
		t.Fatalf("expected total 2029.97, got %s", view.Total)
	}
}

func TestClear(t *testing.T) {
	service, store := newService()

	service.Add(sid, 1, 1)
	if err := service.Clear(sid); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, _ := store.Load(sid)
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}
}
