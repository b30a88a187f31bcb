package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sarisari-pos/internal/metrics"

	"go.uber.org/zap"
)

// Backend is the subset of the backend collaborator the catalog uses.
type Backend interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateProduct(ctx context.Context, in ProductInput) error
	UpdateProduct(ctx context.Context, id string, u ProductUpdate) error
	AddCategory(ctx context.Context, name string, image *Image) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Cache keeps the last good product list across restarts.
type Cache interface {
	SaveProducts(ctx context.Context, products []Product) error
	LoadProducts(ctx context.Context) ([]Product, error)
	Invalidate(ctx context.Context) error
}

type Log interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Snapshot is an immutable copy of the catalog as last loaded.
type Snapshot struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
	LoadedAt   time.Time  `json:"loaded_at"`
	// ProductsStale is set when products came from the cache or a previous
	// load because the backend could not be reached.
	ProductsStale bool `json:"products_stale"`
	// CategoriesFallback is set when the built-in defaults are in use.
	CategoriesFallback bool `json:"categories_fallback"`
}

type Catalog struct {
	backend Backend
	cache   Cache
	log     Log

	mu   sync.RWMutex
	snap Snapshot
}

func New(backend Backend, cache Cache, log Log) *Catalog {
	return &Catalog{
		backend: backend,
		cache:   cache,
		log:     log,
		snap: Snapshot{
			Products:           []Product{},
			Categories:         DefaultCategories(),
			CategoriesFallback: true,
		},
	}
}

// Refresh reloads products and categories. Failures are returned but never
// leave the catalog empty: products fall back to the cache or the previous
// snapshot, categories fall back to DefaultCategories.
func (c *Catalog) Refresh(ctx context.Context) error {
	var errs []error
	prev := c.Snapshot()
	next := Snapshot{LoadedAt: time.Now()}

	products, err := c.backend.ListProducts(ctx)
	switch {
	case err == nil:
		next.Products = products
		c.saveCache(ctx, products)
	default:
		errs = append(errs, fmt.Errorf("load products: %w", err))
		next.Products, next.ProductsStale = c.fallbackProducts(ctx, prev)
	}

	categories, err := c.backend.ListCategories(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load categories: %w", err))
	}
	next.Categories = namedOnly(categories)
	if len(next.Categories) == 0 {
		next.Categories = DefaultCategories()
		next.CategoriesFallback = true
	}

	c.mu.Lock()
	c.snap = next
	c.mu.Unlock()

	if len(errs) > 0 {
		metrics.CatalogRefreshes.WithLabelValues("failed").Inc()
		err := errors.Join(errs...)
		c.log.Warn("catalog refresh incomplete", zap.Error(err),
			zap.Bool("products_stale", next.ProductsStale),
			zap.Bool("categories_fallback", next.CategoriesFallback))
		return err
	}

	metrics.CatalogRefreshes.WithLabelValues("ok").Inc()
	c.log.Info("catalog refreshed",
		zap.Int("products", len(next.Products)),
		zap.Int("categories", len(next.Categories)))
	return nil
}

func (c *Catalog) fallbackProducts(ctx context.Context, prev Snapshot) ([]Product, bool) {
	if c.cache != nil {
		cached, err := c.cache.LoadProducts(ctx)
		if err == nil && len(cached) > 0 {
			return cached, true
		}
		if err != nil {
			c.log.Warn("catalog cache unavailable", zap.Error(err))
		}
	}
	return prev.Products, true
}

func (c *Catalog) saveCache(ctx context.Context, products []Product) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SaveProducts(ctx, products); err != nil {
		c.log.Warn("failed to cache products", zap.Error(err))
	}
}

func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := c.snap
	snap.Products = append([]Product(nil), c.snap.Products...)
	snap.Categories = append([]Category(nil), c.snap.Categories...)
	return snap
}

func (c *Catalog) Products() []Product {
	return c.Snapshot().Products
}

// Categories returns the backend category list, or the defaults.
func (c *Catalog) Categories() []Category {
	return c.Snapshot().Categories
}

// Product looks up a product by id in the current snapshot.
func (c *Catalog) Product(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.snap.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput) error {
	in, err := in.Normalize()
	if err != nil {
		return err
	}
	if err := ValidateBarcode(c.Products(), in.Barcode, ""); err != nil {
		return err
	}
	if err := c.backend.CreateProduct(ctx, in); err != nil {
		return fmt.Errorf("create product %q: %w", in.Name, err)
	}
	c.log.Info("product created", zap.String("name", in.Name))
	c.afterWrite(ctx)
	return nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, id string, u ProductUpdate) error {
	u, err := u.Normalize()
	if err != nil {
		return err
	}
	if u.Barcode != nil {
		if err := ValidateBarcode(c.Products(), *u.Barcode, id); err != nil {
			return err
		}
	}
	if err := c.backend.UpdateProduct(ctx, id, u); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	c.log.Info("product updated", zap.String("id", id))
	c.afterWrite(ctx)
	return nil
}

func (c *Catalog) AddCategory(ctx context.Context, name string, image *Image) (Category, error) {
	name = strings.TrimSpace(name)
	if err := ValidateCategoryName(c.Categories(), name); err != nil {
		return Category{}, err
	}
	created, err := c.backend.AddCategory(ctx, name, image)
	if err != nil {
		return Category{}, fmt.Errorf("add category %q: %w", name, err)
	}
	c.log.Info("category added", zap.String("name", name), zap.String("id", created.ID))
	c.afterWrite(ctx)
	return created, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	if err := c.backend.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	c.log.Info("category deleted", zap.String("id", id))
	c.afterWrite(ctx)
	return nil
}

// afterWrite drops the cached list and reloads. The write itself already
// succeeded, so a failed reload is only logged.
func (c *Catalog) afterWrite(ctx context.Context) {
	if c.cache != nil {
		if err := c.cache.Invalidate(ctx); err != nil {
			c.log.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("reload after write failed", zap.Error(err))
	}
}

func namedOnly(categories []Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, cat := range categories {
		if cat.Named() {
			out = append(out, cat)
		}
	}
	return out
}
