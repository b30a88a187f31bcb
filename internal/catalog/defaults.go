package catalog

import "strconv"

// UncategorizedName labels products the backend returns without a category.
const UncategorizedName = "Uncategorized"

var defaultCategoryNames = []string{
	"Groceries",
	"Beverages",
	"Food",
	"Snacks",
	"Dairy",
	"Frozen",
	"Bakery",
	"Meat & Seafood",
	"Fruits & Vegetables",
	"Personal Care",
	"Household",
	"Other",
}

// DefaultCategories is the list used when the backend has none to offer.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategoryNames))
	for i, name := range defaultCategoryNames {
		out[i] = Category{ID: strconv.Itoa(i + 1), Name: name}
	}
	return out
}
