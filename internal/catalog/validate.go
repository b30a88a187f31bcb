package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateBarcode  = errors.New("barcode already exists")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrEmptyName         = errors.New("name is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrNegativeStock     = errors.New("stock must not be negative")
)

// DefaultMinStock is used when a new product does not set a threshold.
const DefaultMinStock = 5

// ValidateBarcode rejects a non-empty barcode already used by another
// product. editingID excludes the product being edited.
func ValidateBarcode(products []Product, barcode, editingID string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil
	}
	for _, p := range products {
		if p.ID == editingID {
			continue
		}
		if strings.TrimSpace(p.Barcode) == barcode {
			return fmt.Errorf("%w: %q is used by %s", ErrDuplicateBarcode, barcode, p.Name)
		}
	}
	return nil
}

// ValidateCategoryName rejects an empty name or one matching an existing
// category case-insensitively.
func ValidateCategoryName(categories []Category, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, c.Name)
		}
	}
	return nil
}

// Normalize trims the input and applies the product form rules.
func (in ProductInput) Normalize() (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return in, ErrEmptyName
	}
	if in.Price.IsNegative() {
		return in, ErrNegativePrice
	}
	if in.Stock < 0 {
		return in, ErrNegativeStock
	}
	if in.MinStock == 0 {
		in.MinStock = DefaultMinStock
	}
	if in.MinStock < 1 {
		in.MinStock = 1
	}
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	return in, nil
}

func (u ProductUpdate) Normalize() (ProductUpdate, error) {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return u, ErrEmptyName
		}
		u.Name = &name
	}
	if u.Barcode != nil {
		barcode := strings.TrimSpace(*u.Barcode)
		u.Barcode = &barcode
	}
	if u.Price != nil && u.Price.IsNegative() {
		return u, ErrNegativePrice
	}
	if u.Stock != nil && *u.Stock < 0 {
		return u, ErrNegativeStock
	}
	if u.MinStock != nil && *u.MinStock < 1 {
		one := 1
		u.MinStock = &one
	}
	return u, nil
}
