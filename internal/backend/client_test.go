package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sarisari-pos/internal/catalog"

	"github.com/shopspring/decimal"
)

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", 2*time.Second, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("", time.Second); err == nil {
		t.Fatal("expected error")
	}
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" || r.Method != http.MethodGet {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, `[
			{"product_id": 1, "product_name": "Milk", "category_name": "Dairy", "price": 60, "stock_quantity": 3, "min_stock": 1, "unit": "pcs", "barcode": "480"},
			{"product_id": 2, "product_name": "Mystery", "category_name": null, "price": "12.50", "stock_quantity": 4, "unit": "pcs"},
			{"product_id": 3, "product_name": "Broken", "price": 1, "stock_quantity": "lots"}
		]`)
	}), WithTokenSource(staticToken("tok")))

	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, malformed row should be skipped", len(products))
	}

	milk := products[0]
	if milk.ID != "1" || milk.Category != "Dairy" || milk.MinStock != 1 || milk.Barcode != "480" || !milk.Price.Equal(decimal.NewFromInt(60)) {
		t.Errorf("milk = %+v", milk)
	}
	mystery := products[1]
	if mystery.Category != catalog.UncategorizedName || mystery.MinStock != 0 || mystery.Barcode != "" {
		t.Errorf("mystery = %+v", mystery)
	}
	if !mystery.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("price = %s", mystery.Price)
	}
}

func TestListCategoriesSkipsBadNames(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"category_id": 1, "category_name": "Dairy", "image_path": "dairy.png"},
			{"category_id": 2, "category_name": null},
			{"category_id": 3, "category_name": 42},
			{"category_id": "x4"},
			{"category_id": 5, "category_name": "Snacks"}
		]`)
	}))

	cats, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("cats = %+v", cats)
	}
	if cats[0].ID != "1" || cats[0].ImagePath != "dairy.png" || cats[1].Name != "Snacks" {
		t.Errorf("cats = %+v", cats)
	}
}

func TestAddCategoryMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/add_category" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if got := r.FormValue("name"); got != "Pet Food" {
			t.Errorf("name = %q", got)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "pet.png" || string(data) != "PNG" {
			t.Errorf("file = %s %q", header.Filename, data)
		}
		_, _ = io.WriteString(w, `{"category_id": 14, "image_path": "pet.png"}`)
	}))

	cat, err := c.AddCategory(context.Background(), "Pet Food", &catalog.Image{Filename: "pet.png", Content: strings.NewReader("PNG")})
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if cat.ID != "14" || cat.Name != "Pet Food" || cat.ImagePath != "pet.png" {
		t.Errorf("cat = %+v", cat)
	}
}

func TestDeleteCategoryAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/categories/7" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error": "category has products"}`)
	}))

	err := c.DeleteCategory(context.Background(), "7")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "category has products" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestCreateAndUpdateProductBodies(t *testing.T) {
	var bodies []map[string]interface{}
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		bodies = append(bodies, body)
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.CreateProduct(context.Background(), catalog.ProductInput{
		Name: "Bread", Category: "Bakery", Price: decimal.RequireFromString("45.50"), Stock: 10, MinStock: 5, Unit: "pcs",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	stock := 4
	if err := c.UpdateProduct(context.Background(), "9", catalog.ProductUpdate{Stock: &stock}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if paths[0] != "POST /products" || paths[1] != "PUT /api/update_product/9" {
		t.Fatalf("paths = %v", paths)
	}
	created := bodies[0]
	if created["product_name"] != "Bread" || created["price"] != 45.5 || created["category_name"] != "Bakery" || created["created_by"] != "Unknown" {
		t.Errorf("create body = %v", created)
	}
	if len(bodies[1]) != 1 || bodies[1]["stock_quantity"] != float64(4) {
		t.Errorf("update body = %v", bodies[1])
	}
}

func TestCreateTransaction(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["cashier"] != "Ana" || body["payment_method"] != "Cash" || body["total_amount"] != float64(180) {
			t.Errorf("body = %v", body)
		}
		items := body["items"].([]interface{})
		item := items[0].(map[string]interface{})
		if item["product_id"] != float64(1) || item["quantity"] != float64(3) || item["price"] != float64(60) {
			t.Errorf("item = %v", item)
		}
		_, _ = io.WriteString(w, `{"transaction_id": 1042, "date_time": "2025-11-03 09:15:00"}`)
	}))

	res, err := c.CreateTransaction(context.Background(), TransactionRequest{
		Cashier:       "Ana",
		PaymentMethod: "Cash",
		Total:         decimal.NewFromInt(180),
		Items:         []TransactionItem{{ProductID: "1", Quantity: 3, Price: decimal.NewFromInt(60)}},
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if res.TransactionID != "1042" {
		t.Errorf("TransactionID = %q", res.TransactionID)
	}
	want := time.Date(2025, 11, 3, 9, 15, 0, 0, time.UTC)
	if !res.RecordedAt.Equal(want) {
		t.Errorf("RecordedAt = %v, want %v", res.RecordedAt, want)
	}
	if ReceiptNumber(res.TransactionID) != "RCP-1042" {
		t.Errorf("ReceiptNumber = %q", ReceiptNumber(res.TransactionID))
	}
}

func TestCreateTransactionTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.CreateTransaction(ctx, TransactionRequest{Cashier: "Ana", PaymentMethod: "Card", Total: decimal.NewFromInt(1)})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded in chain", err)
	}
}

func TestListTransactions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"transaction_id": 7, "total_amount": 91, "payment_method": "Card", "cashier": "Ben",
			"date_time": "2025-11-03T10:00:00", "items": [{"product_id": 2, "product_name": "Bread", "quantity": 2, "price": 45.5}]}]`)
	}))

	sales, err := c.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sales = %+v", sales)
	}
	s := sales[0]
	if s.ReceiptNumber != "RCP-7" || s.Timestamp.Location() != time.UTC || s.Timestamp.Hour() != 10 {
		t.Errorf("sale = %+v", s)
	}
	if !s.Items[0].Subtotal.Equal(decimal.NewFromInt(91)) {
		t.Errorf("subtotal = %s", s.Items[0].Subtotal)
	}
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := New(url, time.Second)
	if err := c.Health(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestIDJSON(t *testing.T) {
	var ids []ID
	if err := json.Unmarshal([]byte(`[1, "hc-2", null, 3.0]`), &ids); err != nil {
		t.Fatal(err)
	}
	if ids[0] != "1" || ids[1] != "hc-2" || ids[2] != "" || ids[3] != "3.0" {
		t.Fatalf("ids = %v", ids)
	}
	raw, _ := json.Marshal([]ID{"12", "hc-2"})
	if string(raw) != `[12,"hc-2"]` {
		t.Fatalf("marshal = %s", raw)
	}
}
