package checkout

import (
	"strings"
	"time"

	"sarisari-pos/internal/backend"
	"sarisari-pos/internal/cart"

	"github.com/shopspring/decimal"
)

const (
	Cash = "Cash"
	Card = "Card"
)

// Where a receipt's timestamp came from.
const (
	TimestampServer = "server"
	TimestampClient = "client"
)

// Payment is what the payment capture hands over when the customer has
// paid. Items are the lines the customer was shown; they are recorded as
// given, not re-read from the cart.
type Payment struct {
	Method       string          `json:"payment_method"`
	Total        decimal.Decimal `json:"total"`
	Items        []cart.Line     `json:"items"`
	CashReceived decimal.Decimal `json:"cash_received"`
}

// Receipt is the immutable record of a completed sale.
type Receipt struct {
	Number          string              `json:"receipt_number"`
	TransactionID   string              `json:"transaction_id"`
	SaleID          string              `json:"sale_id"`
	Items           []cart.Line         `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   string              `json:"payment_method"`
	CashierName     string              `json:"cashier_name"`
	CashReceived    decimal.NullDecimal `json:"cash_received"`
	Change          decimal.NullDecimal `json:"change"`
	Timestamp       time.Time           `json:"timestamp"`
	TimestampSource string              `json:"timestamp_source"`
}

func newReceipt(res *backend.TransactionResult, saleID string, p Payment, items []cart.Line, total decimal.Decimal, cashier string, now time.Time) Receipt {
	r := Receipt{
		Number:          backend.ReceiptNumber(res.TransactionID),
		TransactionID:   res.TransactionID,
		SaleID:          saleID,
		Items:           items,
		Total:           total,
		PaymentMethod:   p.Method,
		CashierName:     cashier,
		Timestamp:       res.RecordedAt,
		TimestampSource: TimestampServer,
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = now
		r.TimestampSource = TimestampClient
	}
	if strings.EqualFold(p.Method, Cash) {
		r.CashReceived = decimal.NewNullDecimal(p.CashReceived)
		r.Change = decimal.NewNullDecimal(p.CashReceived.Sub(total))
	}
	return r
}

// clone copies r so that no caller shares its Items with the orchestrator.
func (r *Receipt) clone() *Receipt {
	c := *r
	c.Items = append([]cart.Line(nil), r.Items...)
	return &c
}

func transactionRequest(userID, cashier, method string, total decimal.Decimal, items []cart.Line) backend.TransactionRequest {
	req := backend.TransactionRequest{
		UserID:        userID,
		Cashier:       cashier,
		PaymentMethod: method,
		Total:         total,
		Items:         make([]backend.TransactionItem, len(items)),
	}
	for i, l := range items {
		req.Items[i] = backend.TransactionItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}
	return req
}
