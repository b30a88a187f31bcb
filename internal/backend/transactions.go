package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItem is one sold line as the backend records it.
type TransactionItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type TransactionRequest struct {
	// UserID is the backend id of the signed-in cashier, when known.
	UserID        string
	Cashier       string
	PaymentMethod string
	Total         decimal.Decimal
	Items         []TransactionItem
}

// TransactionResult is the backend's acknowledgement of a recorded sale.
type TransactionResult struct {
	TransactionID string
	// RecordedAt is the server-assigned time; zero when the backend did
	// not send one.
	RecordedAt time.Time
}

// SaleItem is one line of a past sale.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Sale is a past transaction for history views.
type Sale struct {
	TransactionID string          `json:"transaction_id"`
	ReceiptNumber string          `json:"receipt_number"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Cashier       string          `json:"cashier"`
	Timestamp     time.Time       `json:"timestamp"`
	Items         []SaleItem      `json:"items"`
}

// ReceiptNumber derives the printed receipt number from a transaction id.
func ReceiptNumber(transactionID string) string {
	return "RCP-" + transactionID
}

// CreateTransaction records a sale with POST /api/transactions.
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResult, error) {
	body := wireTransaction{
		Cashier:       req.Cashier,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   number(req.Total),
		Items:         make([]wireTransactionItem, len(req.Items)),
	}
	if req.UserID != "" {
		uid := ID(req.UserID)
		body.UserID = &uid
	}
	for i, item := range req.Items {
		body.Items[i] = wireTransactionItem{
			ProductID: ID(item.ProductID),
			Quantity:  item.Quantity,
			Price:     number(item.Price),
		}
	}

	var created wireTransactionCreated
	if err := c.sendJSON(ctx, "create_transaction", http.MethodPost, "/api/transactions", body, &created); err != nil {
		return nil, err
	}
	if created.TransactionID == "" {
		return nil, &APIError{Endpoint: "create_transaction", Status: http.StatusOK, Message: "response has no transaction_id"}
	}

	result := &TransactionResult{TransactionID: string(created.TransactionID)}
	if t, ok := parseTime(created.DateTime); ok {
		result.RecordedAt = t
	}
	return result, nil
}

// ListTransactions loads the sales history with GET /api/transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]Sale, error) {
	var rows []wireSale
	if err := c.getJSON(ctx, "list_transactions", "/api/transactions", &rows); err != nil {
		return nil, err
	}

	sales := make([]Sale, 0, len(rows))
	for _, w := range rows {
		sale := Sale{
			TransactionID: string(w.TransactionID),
			ReceiptNumber: ReceiptNumber(string(w.TransactionID)),
			Total:         w.TotalAmount,
			PaymentMethod: w.PaymentMethod,
			Cashier:       w.Cashier,
			Items:         make([]SaleItem, 0, len(w.Items)),
		}
		if t, ok := parseTime(w.DateTime); ok {
			sale.Timestamp = t
		}
		for _, it := range w.Items {
			sale.Items = append(sale.Items, SaleItem{
				ProductID:   string(it.ProductID),
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Price:       it.Price,
				Subtotal:    it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
			})
		}
		sales = append(sales, sale)
	}
	return sales, nil
}
