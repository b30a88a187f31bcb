package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeBackend struct {
	products    []Product
	categories  []Category
	productErr  error
	categoryErr error

	created []ProductInput
	updated map[string]ProductUpdate
	added   []string
	deleted []string
}

func (f *fakeBackend) ListProducts(context.Context) ([]Product, error) {
	return f.products, f.productErr
}

func (f *fakeBackend) ListCategories(context.Context) ([]Category, error) {
	return f.categories, f.categoryErr
}

func (f *fakeBackend) CreateProduct(_ context.Context, in ProductInput) error {
	f.created = append(f.created, in)
	return nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, id string, u ProductUpdate) error {
	if f.updated == nil {
		f.updated = map[string]ProductUpdate{}
	}
	f.updated[id] = u
	return nil
}

func (f *fakeBackend) AddCategory(_ context.Context, name string, _ *Image) (Category, error) {
	f.added = append(f.added, name)
	return Category{ID: "99", Name: name}, nil
}

func (f *fakeBackend) DeleteCategory(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type memCache struct {
	products    []Product
	invalidated int
}

func (m *memCache) SaveProducts(_ context.Context, p []Product) error {
	m.products = p
	return nil
}

func (m *memCache) LoadProducts(context.Context) ([]Product, error) {
	if m.products == nil {
		return nil, ErrCacheMiss
	}
	return m.products, nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.invalidated++
	m.products = nil
	return nil
}

func milk() Product {
	return Product{ID: "1", Name: "Milk", Category: "Dairy", Price: decimal.NewFromInt(60), Stock: 3, MinStock: 1, Barcode: "4800016"}
}

func TestRefreshLoadsSnapshot(t *testing.T) {
	be := &fakeBackend{
		products:   []Product{milk()},
		categories: []Category{{ID: "1", Name: "Dairy"}, {ID: "2", Name: "  "}},
	}
	cache := &memCache{}
	c := New(be, cache, zap.NewNop())

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Products) != 1 || snap.ProductsStale {
		t.Fatalf("products = %+v stale=%v", snap.Products, snap.ProductsStale)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Dairy" {
		t.Fatalf("categories = %+v, unnamed entry should be skipped", snap.Categories)
	}
	if snap.CategoriesFallback {
		t.Error("unexpected category fallback")
	}
	if len(cache.products) != 1 {
		t.Error("products were not cached")
	}
	if _, ok := c.Product("1"); !ok {
		t.Error("Product(1) not found")
	}
}

func TestRefreshFallsBack(t *testing.T) {
	be := &fakeBackend{
		productErr:  errors.New("connection refused"),
		categoryErr: errors.New("connection refused"),
	}
	cache := &memCache{products: []Product{milk()}}
	c := New(be, cache, zap.NewNop())

	err := c.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected refresh error")
	}

	snap := c.Snapshot()
	if !snap.ProductsStale || len(snap.Products) != 1 {
		t.Errorf("expected cached products, got %+v", snap)
	}
	if !snap.CategoriesFallback || len(snap.Categories) != len(DefaultCategories()) {
		t.Errorf("expected default categories, got %+v", snap.Categories)
	}
}

func TestRefreshEmptyCategoryListUsesDefaults(t *testing.T) {
	be := &fakeBackend{products: []Product{milk()}, categories: []Category{}}
	c := New(be, nil, zap.NewNop())

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 12 || cats[11].Name != "Other" {
		t.Fatalf("categories = %+v", cats)
	}
}

func TestCreateProductRejectsDuplicateBarcode(t *testing.T) {
	be := &fakeBackend{products: []Product{milk()}}
	c := New(be, nil, zap.NewNop())
	_ = c.Refresh(context.Background())

	err := c.CreateProduct(context.Background(), ProductInput{Name: "Soy Milk", Price: decimal.NewFromInt(80), Barcode: " 4800016 "})
	if !errors.Is(err, ErrDuplicateBarcode) {
		t.Fatalf("err = %v, want ErrDuplicateBarcode", err)
	}
	if len(be.created) != 0 {
		t.Fatal("backend should not be called")
	}
}

func TestCreateProductNormalizes(t *testing.T) {
	be := &fakeBackend{}
	cache := &memCache{}
	c := New(be, cache, zap.NewNop())

	err := c.CreateProduct(context.Background(), ProductInput{Name: " Bread ", Price: decimal.NewFromInt(45), Stock: 10, MinStock: -3})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	got := be.created[0]
	if got.Name != "Bread" || got.MinStock != 1 || got.Unit != "pcs" {
		t.Errorf("created = %+v", got)
	}
	if cache.invalidated != 1 {
		t.Errorf("cache invalidated %d times", cache.invalidated)
	}
}

func TestUpdateProductKeepsOwnBarcode(t *testing.T) {
	be := &fakeBackend{products: []Product{milk()}}
	c := New(be, nil, zap.NewNop())
	_ = c.Refresh(context.Background())

	barcode := "4800016"
	if err := c.UpdateProduct(context.Background(), "1", ProductUpdate{Barcode: &barcode}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if _, ok := be.updated["1"]; !ok {
		t.Fatal("update not sent")
	}
}

func TestAddCategoryRejectsDuplicate(t *testing.T) {
	be := &fakeBackend{categories: []Category{{ID: "1", Name: "Dairy"}}}
	c := New(be, nil, zap.NewNop())
	_ = c.Refresh(context.Background())

	if _, err := c.AddCategory(context.Background(), " dairy ", nil); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err = %v, want ErrDuplicateCategory", err)
	}
	if _, err := c.AddCategory(context.Background(), "", nil); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}

	created, err := c.AddCategory(context.Background(), "Snacks", nil)
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if created.Name != "Snacks" || len(be.added) != 1 {
		t.Errorf("created = %+v, added = %v", created, be.added)
	}
}

func TestRefresherSkipsWhileBusy(t *testing.T) {
	be := &fakeBackend{products: []Product{milk()}}
	c := New(be, nil, zap.NewNop())

	busy := true
	r := NewRefresher(c, func() bool { return !busy }, defaultTestTimeout, zap.NewNop())

	if r.Run() {
		t.Fatal("refresh should be skipped while busy")
	}
	if len(c.Products()) != 0 {
		t.Fatal("catalog changed while busy")
	}

	busy = false
	if !r.Run() {
		t.Fatal("refresh should run when idle")
	}
	if len(c.Products()) != 1 {
		t.Fatal("catalog not refreshed")
	}
}

func TestRefresherRejectsBadSpec(t *testing.T) {
	r := NewRefresher(New(&fakeBackend{}, nil, zap.NewNop()), nil, defaultTestTimeout, zap.NewNop())
	if err := r.Start("every now and then"); err == nil {
		r.Stop()
		t.Fatal("expected schedule error")
	}
}
