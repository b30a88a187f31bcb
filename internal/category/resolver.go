// Package category merges the curated and backend category lists and maps
// each category to its display artwork. Nothing here performs I/O; image
// URLs are computed, not fetched.
package category

import (
	"regexp"
	"strings"

	"sarisari-pos/internal/catalog"
)

const imageDir = "/static/category_images/"

var (
	ampersandSpacing = regexp.MustCompile(`\s*&\s*`)
	slashSpacing     = regexp.MustCompile(`\s*/\s*`)
	whitespace       = regexp.MustCompile(`\s+`)
)

// Merge returns curated entries followed by backend entries whose names
// are not already present. Names compare case-insensitively and the first
// occurrence wins, so curated entries take precedence. Entries without a
// name are dropped.
func Merge(curated, backend []catalog.Category) []catalog.Category {
	seen := make(map[string]struct{}, len(curated)+len(backend))
	out := make([]catalog.Category, 0, len(curated)+len(backend))

	for _, list := range [][]catalog.Category{curated, backend} {
		for _, c := range list {
			if !c.Named() {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(c.Name))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// NormalizeKey turns a display name into its lookup key:
// "Meat  &  Seafood" -> "meat&seafood", "Toiletries / Hygiene" -> "toiletries/hygiene".
func NormalizeKey(name string) string {
	key := ampersandSpacing.ReplaceAllString(name, " & ")
	key = slashSpacing.ReplaceAllString(key, "/")
	key = whitespace.ReplaceAllString(key, "")
	return strings.ToLower(key)
}

// Gradient returns the presentation gradient for a category name.
func Gradient(name string) string {
	if g, ok := gradients[NormalizeKey(name)]; ok {
		return g
	}
	return gradients["other"]
}

// Tile is a category ready for the product browser.
type Tile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Key      string `json:"key"`
	Gradient string `json:"gradient"`
	ImageURL string `json:"image_url"`
	Count    int    `json:"count"`
}

type Resolver struct {
	staticBase string
}

// NewResolver takes the base URL the backend serves static assets from.
func NewResolver(staticBase string) *Resolver {
	return &Resolver{staticBase: strings.TrimSuffix(staticBase, "/")}
}

// ImageURL prefers the stored image, then the curated artwork for the
// name, then the placeholder.
func (r *Resolver) ImageURL(c catalog.Category) string {
	if path := strings.TrimLeft(strings.TrimSpace(c.ImagePath), "/"); path != "" {
		return r.staticBase + imageDir + path
	}
	if img, ok := curatedImages[c.Name]; ok {
		return img
	}
	return PlaceholderImage
}

// Tiles merges backend categories into the curated list and resolves each
// one. The first tile is always "All Products". Counts come from products.
func (r *Resolver) Tiles(backend []catalog.Category, products []catalog.Product) []Tile {
	merged := Merge(CuratedCategories(), backend)

	tiles := make([]Tile, 0, len(merged)+1)
	tiles = append(tiles, Tile{
		ID:       catalog.AllCategories,
		Name:     AllProductsName,
		Key:      NormalizeKey(AllProductsName),
		Gradient: Gradient(AllProductsName),
		ImageURL: AllProductsImage,
		Count:    catalog.CategoryCount(products, catalog.AllCategories),
	})

	for _, c := range merged {
		tiles = append(tiles, Tile{
			ID:       c.ID,
			Name:     c.Name,
			Key:      NormalizeKey(c.Name),
			Gradient: Gradient(c.Name),
			ImageURL: r.ImageURL(c),
			Count:    catalog.CategoryCount(products, c.Name),
		})
	}
	return tiles
}
