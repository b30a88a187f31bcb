package catalog

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the terminal's read-only view of a backend product.
type Product struct {
	// ID is the backend product_id rendered as a string.
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	// MinStock is the threshold at or below which the product is flagged low.
	MinStock  int    `json:"min_stock"`
	Barcode   string `json:"barcode"`
	Unit      string `json:"unit,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Category is one entry of a category list. ID is opaque: backend ids are
// numeric, curated ids are strings.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path,omitempty"`
}

// Named reports whether the entry has a usable name.
func (c Category) Named() bool {
	return strings.TrimSpace(c.Name) != ""
}

// ProductInput carries the fields for a new product.
type ProductInput struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	CategoryID string          `json:"category_id,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	Barcode    string          `json:"barcode"`
	Unit       string          `json:"unit"`
	CreatedBy  string          `json:"created_by"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name       *string          `json:"name,omitempty"`
	Category   *string          `json:"category,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Stock      *int             `json:"stock,omitempty"`
	MinStock   *int             `json:"min_stock,omitempty"`
	Barcode    *string          `json:"barcode,omitempty"`
}

// Image is an upload attached to a new category.
type Image struct {
	Filename string
	Content  io.Reader
}
