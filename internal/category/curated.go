package category

import (
	"strconv"

	"sarisari-pos/internal/catalog"
)

// Curated is a built-in category with its default artwork.
type Curated struct {
	Name     string
	Image    string
	Gradient string
}

const (
	DefaultGradient = "from-gray-100 to-gray-200"

	// PlaceholderImage is shown when a category has no artwork at all.
	PlaceholderImage = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='400' height='250' viewBox='0 0 400 250'%3E%3Crect width='100%25' height='100%25' fill='%23eef2e7'/%3E%3Ctext x='50%25' y='50%25' fill='%2390a88a' font-family='Arial' font-size='20' text-anchor='middle' alignment-baseline='middle'%3ENo Image%3C/text%3E%3C/svg%3E"

	AllProductsName  = "All Products"
	AllProductsImage = "https://media.istockphoto.com/photos/shopping-basket-full-of-variety-of-grocery-products-food-and-drink-on-picture-id1319625327?b=1&k=20&m=1319625327&s=170667a&w=0&h=FRRQT4yPOTumTJkCOmthHBcRvzoGvqw7drlSlYZhUNo="
)

var gradients = map[string]string{
	"groceries":          "from-blue-100 to-blue-200",
	"beverages":          "from-amber-100 to-amber-200",
	"food":               "from-orange-100 to-orange-200",
	"snacks":             "from-pink-100 to-pink-200",
	"dairy":              "from-green-100 to-green-200",
	"frozen":             "from-blue-100 to-blue-200",
	"bakery":             "from-yellow-100 to-yellow-200",
	"meat&seafood":       "from-red-100 to-red-200",
	"fruits&vegetables":  "from-green-100 to-green-200",
	"personalcare":       "from-purple-100 to-purple-200",
	"household":          "from-pink-100 to-pink-200",
	"babyproducts":       "from-orange-100 to-orange-200",
	"toiletries/hygiene": "from-indigo-100 to-indigo-200",
	"allproducts":        DefaultGradient,
	"other":              DefaultGradient,
}

var curated = []Curated{
	{
		Name:     "Groceries",
		Image:    "https://images.unsplash.com/photo-1760612887290-62645e654eaf?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxjYW5uZWQlMjBmb29kJTIwZ3JvY2VyaWVzfGVufDF8fHx8MTc2NDM4NDI4M3ww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-blue-100 to-blue-200",
	},
	{
		Name:     "Beverages",
		Image:    "https://images.unsplash.com/photo-1636245297990-c641560ff4b5?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxiZXZlcmFnZXMlMjBkcmlua3MlMjBib3R0bGVzfGVufDF8fHx8MTc2NDMzMjgxMXww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-amber-100 to-amber-200",
	},
	{
		Name:     "Food",
		Image:    "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxmb29kJTIwbWVhbHN8ZW58MXx8fHwxNzY0Mzg0Mjg0fDA&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-orange-100 to-orange-200",
	},
	{
		Name:     "Snacks",
		Image:    "https://images.unsplash.com/photo-1742972459942-aed536c720cf?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxzbmFja3MlMjBjaGlwcyUyMHZhcmlldHl8ZW58MXx8fHwxNzY0Mzg0MjgzfDA&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-pink-100 to-pink-200",
	},
	{
		Name:     "Dairy",
		Image:    "https://images.unsplash.com/photo-1628088062854-d1870b4553da?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxkYWlyeSUyMHByb2R1Y3RzfGVufDF8fHx8MTc2NDM4NDI4NHww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-green-100 to-green-200",
	},
	{
		Name:     "Bakery",
		Image:    "https://images.unsplash.com/photo-1509440159596-0249088772ff?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxiYWtlcnklMjBicmVhZHxlbnwxfHx8fDE3NjQzODQyODR8MA&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-yellow-100 to-yellow-200",
	},
	{
		Name:     "Frozen",
		Image:    "https://images.unsplash.com/photo-1606787366850-de6330128bfc?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxmcm96ZW4lMjBmb29kfGVufDF8fHx8MTc2NDM4NDI4NHww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-blue-100 to-blue-200",
	},
	{
		Name:     "Meat & Seafood",
		Image:    "https://images.unsplash.com/photo-1677607219966-22fbfa433667?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxyYXclMjBtZWF0JTIwYmVlZnxlbnwxfHx8fDE3NjQzNDY2NjR8MA&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-red-100 to-red-200",
	},
	{
		Name:     "Fruits & Vegetables",
		Image:    "https://images.unsplash.com/photo-1574955598898-d105479382e5?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxmcmVzaCUyMHZlZ2V0YWJsZXMlMjBhc3NvcnRlZHxlbnwxfHx8fDE3NjQzODQyODF8MA&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-green-100 to-green-200",
	},
	{
		Name:     "Personal Care",
		Image:    "https://greenchemfinder.com/wp-content/uploads/elementor/thumbs/AdobeStock_1255629662-scaled-r3ym4s0zkic1oaxp9cbgqnaedms7bd33llzxrbcr60.jpeg",
		Gradient: "from-purple-100 to-purple-200",
	},
	{
		Name:     "Household",
		Image:    "https://images.unsplash.com/photo-1758887262204-a49092d85f15?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxjbGVhbmluZyUyMGhvdXNlaG9sZCUyMHByb2R1Y3RzfGVufDF8fHx8MTc2NDM4NDI4NHww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-pink-100 to-pink-200",
	},
	{
		Name:     "Baby Products",
		Image:    "https://images.unsplash.com/photo-1555252333-9f8e92e65df9?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHxiYWJ5JTIwcHJvZHVjdHMlMjBjYXJlfGVufDF8fHx8MTc2NDM4NDI4NHww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-orange-100 to-orange-200",
	},
	{
		Name:     "Toiletries/Hygiene",
		Image:    "https://images.unsplash.com/photo-1760184762833-7c6bd9ef1415?crop=entropy&cs=tinysrgb&fit=max&fm=jpg&ixid=M3w3Nzg4Nzd8MHwxfHNlYXJjaHwxfHx0b2lsZXRyaWVzJTIwaHlnaWVuZSUyMHByb2R1Y3RzfGVufDF8fHx8MTc2NDM4NDI4NHww&ixlib=rb-4.1.0&q=80&w=1080",
		Gradient: "from-indigo-100 to-indigo-200",
	},
}

var curatedImages = func() map[string]string {
	m := make(map[string]string, len(curated))
	for _, c := range curated {
		m[c.Name] = c.Image
	}
	return m
}()

// CuratedCategories returns the built-in list with ids hc-0, hc-1, ...
func CuratedCategories() []catalog.Category {
	out := make([]catalog.Category, len(curated))
	for i, c := range curated {
		out[i] = catalog.Category{ID: "hc-" + strconv.Itoa(i), Name: c.Name}
	}
	return out
}
