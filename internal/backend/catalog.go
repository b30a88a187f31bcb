package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"sarisari-pos/internal/catalog"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ListProducts loads GET /products. Rows that cannot be decoded are
// skipped.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var rows []json.RawMessage
	if err := c.getJSON(ctx, "list_products", "/products", &rows); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(rows))
	for i, raw := range rows {
		var w wireProduct
		if err := json.Unmarshal(raw, &w); err != nil {
			c.log.Warn("skipping malformed product", zap.Int("index", i), zap.Error(err))
			continue
		}
		products = append(products, toProduct(w))
	}
	return products, nil
}

func toProduct(w wireProduct) catalog.Product {
	p := catalog.Product{
		ID:        string(w.ProductID),
		Name:      w.ProductName,
		Category:  stringOr(w.CategoryName, catalog.UncategorizedName),
		Price:     w.Price,
		Stock:     w.StockQuantity,
		Unit:      w.Unit,
		Barcode:   stringOr(w.Barcode, ""),
		ImagePath: stringOr(w.ImagePath, ""),
	}
	if w.MinStock != nil {
		p.MinStock = *w.MinStock
	}
	return p
}

// ListCategories loads GET /categories. Entries whose name is missing or
// not a string are skipped.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []json.RawMessage
	if err := c.getJSON(ctx, "list_categories", "/categories", &rows); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(rows))
	for i, raw := range rows {
		var w wireCategory
		if err := json.Unmarshal(raw, &w); err != nil {
			c.log.Warn("skipping malformed category", zap.Int("index", i), zap.Error(err))
			continue
		}
		var name string
		if err := json.Unmarshal(w.CategoryName, &name); err != nil || name == "" {
			c.log.Warn("skipping category without a name", zap.Int("index", i), zap.String("id", string(w.CategoryID)))
			continue
		}
		categories = append(categories, catalog.Category{
			ID:        string(w.CategoryID),
			Name:      name,
			ImagePath: stringOr(w.ImagePath, ""),
		})
	}
	return categories, nil
}

// AddCategory posts a multipart form to /api/add_category.
func (c *Client) AddCategory(ctx context.Context, name string, image *catalog.Image) (catalog.Category, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("name", name); err != nil {
		return catalog.Category{}, errors.Wrap(err, "add_category: write form")
	}
	if image != nil && image.Content != nil {
		part, err := form.CreateFormFile("image", image.Filename)
		if err != nil {
			return catalog.Category{}, errors.Wrap(err, "add_category: write form")
		}
		if _, err := io.Copy(part, image.Content); err != nil {
			return catalog.Category{}, errors.Wrap(err, "add_category: copy image")
		}
	}
	if err := form.Close(); err != nil {
		return catalog.Category{}, errors.Wrap(err, "add_category: close form")
	}

	var created wireNewCategory
	if err := c.do(ctx, "add_category", http.MethodPost, "/api/add_category", &buf, form.FormDataContentType(), &created); err != nil {
		return catalog.Category{}, err
	}
	return catalog.Category{
		ID:        string(created.CategoryID),
		Name:      name,
		ImagePath: stringOr(created.ImagePath, ""),
	}, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, "delete_category", http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) CreateProduct(ctx context.Context, in catalog.ProductInput) error {
	body := wireNewProduct{
		ProductName:   in.Name,
		Price:         number(in.Price),
		StockQuantity: in.Stock,
		Unit:          in.Unit,
		CreatedBy:     in.CreatedBy,
		MinStock:      in.MinStock,
		Barcode:       in.Barcode,
	}
	if body.CreatedBy == "" {
		body.CreatedBy = "Unknown"
	}
	if in.CategoryID != "" {
		id := ID(in.CategoryID)
		body.CategoryID = &id
	} else {
		body.CategoryName = in.Category
	}
	return c.sendJSON(ctx, "create_product", http.MethodPost, "/products", body, nil)
}

// UpdateProduct sends only the fields set in u.
func (c *Client) UpdateProduct(ctx context.Context, id string, u catalog.ProductUpdate) error {
	body := map[string]interface{}{}
	if u.Name != nil {
		body["product_name"] = *u.Name
	}
	if u.Price != nil {
		body["price"] = number(*u.Price)
	}
	if u.Stock != nil {
		body["stock_quantity"] = *u.Stock
	}
	if u.CategoryID != nil {
		body["category_id"] = ID(*u.CategoryID)
	} else if u.Category != nil {
		body["category_name"] = *u.Category
	}
	if u.MinStock != nil {
		body["min_stock"] = *u.MinStock
	}
	if u.Barcode != nil {
		body["barcode"] = *u.Barcode
	}
	return c.sendJSON(ctx, "update_product", http.MethodPut, "/api/update_product/"+url.PathEscape(id), body, nil)
}
