package backend

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// ID accepts either a JSON number or a JSON string and keeps it as text.
// Numeric ids are written back as numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// number renders a decimal as a bare JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// parseTime reads the backend's date_time values. Strings without a zone
// are UTC.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type wireProduct struct {
	ProductID     ID              `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryID    *ID             `json:"category_id"`
	CategoryName  *string         `json:"category_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      *int            `json:"min_stock"`
	Unit          string          `json:"unit"`
	Barcode       *string         `json:"barcode"`
	ImagePath     *string         `json:"image_path"`
}

type wireCategory struct {
	CategoryID   ID              `json:"category_id"`
	CategoryName json.RawMessage `json:"category_name"`
	ImagePath    *string         `json:"image_path"`
}

type wireNewProduct struct {
	ProductName   string      `json:"product_name"`
	Price         json.Number `json:"price"`
	StockQuantity int         `json:"stock_quantity"`
	Unit          string      `json:"unit"`
	CreatedBy     string      `json:"created_by"`
	CategoryID    *ID         `json:"category_id,omitempty"`
	CategoryName  string      `json:"category_name,omitempty"`
	MinStock      int         `json:"min_stock"`
	Barcode       string      `json:"barcode,omitempty"`
}

type wireNewCategory struct {
	CategoryID ID      `json:"category_id"`
	ImagePath  *string `json:"image_path"`
}

type wireTransactionItem struct {
	ProductID ID          `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type wireTransaction struct {
	UserID        *ID                   `json:"user_id,omitempty"`
	Cashier       string                `json:"cashier"`
	PaymentMethod string                `json:"payment_method"`
	TotalAmount   json.Number           `json:"total_amount"`
	Items         []wireTransactionItem `json:"items"`
}

type wireTransactionCreated struct {
	TransactionID ID     `json:"transaction_id"`
	DateTime      string `json:"date_time"`
}

type wireSaleItem struct {
	ProductID   ID              `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type wireSale struct {
	TransactionID ID              `json:"transaction_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Cashier       string          `json:"cashier"`
	DateTime      string          `json:"date_time"`
	Items         []wireSaleItem  `json:"items"`
}

func stringOr(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return *p
}
