package catalog

import "strings"

// AllCategories is the selection that leaves the category unconstrained.
const AllCategories = "All"

// Filter returns the products matching searchTerm and selectedCategory.
//
// The term matches case-insensitively against name and category, and
// case-sensitively against the barcode. An empty selectedCategory or
// AllCategories does not constrain; any other value must equal the
// product's category exactly.
func Filter(products []Product, searchTerm, selectedCategory string) []Product {
	term := strings.ToLower(searchTerm)
	out := make([]Product, 0, len(products))

	for _, p := range products {
		if !matchesTerm(p, searchTerm, term) {
			continue
		}
		if selectedCategory != "" && selectedCategory != AllCategories && p.Category != selectedCategory {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p Product, raw, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Category), lowered) ||
		strings.Contains(p.Barcode, raw)
}

// CategoryCount returns how many products belong to name. AllCategories
// counts everything.
func CategoryCount(products []Product, name string) int {
	if name == AllCategories {
		return len(products)
	}
	n := 0
	for _, p := range products {
		if p.Category == name {
			n++
		}
	}
	return n
}

// LowStock returns the products at or below their minimum stock.
func LowStock(products []Product) []Product {
	var out []Product
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}
