package database

import (
	"testing"
	"time"

	"sarisari-pos/internal/cart"
	"sarisari-pos/internal/checkout"

	"github.com/shopspring/decimal"
)

func sampleReceipt() checkout.Receipt {
	return checkout.Receipt{
		Number:        "RCP-88",
		TransactionID: "88",
		SaleID:        "5f0c6a53-3c0e-4f41-9e7c-2a4b9f0f1d11",
		Items: []cart.Line{
			{ProductID: "1", ProductName: "Sardines", Price: decimal.NewFromInt(25), Quantity: 2},
			{ProductID: "2", ProductName: "Rice 1kg", Price: decimal.RequireFromString("65.50"), Quantity: 2},
		},
		Total:           decimal.NewFromInt(181),
		PaymentMethod:   checkout.Cash,
		CashierName:     "Lorna",
		CashReceived:    decimal.NewNullDecimal(decimal.NewFromInt(200)),
		Change:          decimal.NewNullDecimal(decimal.NewFromInt(19)),
		Timestamp:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		TimestampSource: checkout.TimestampServer,
	}
}

func TestToRecord(t *testing.T) {
	rec := toRecord(sampleReceipt(), "till-2")

	if rec.ReceiptNumber != "RCP-88" || rec.TerminalID != "till-2" || rec.TotalAmount != "181" {
		t.Errorf("record = %+v", rec)
	}
	if rec.CashReceived == nil || *rec.CashReceived != "200" {
		t.Errorf("cash received = %v", rec.CashReceived)
	}
	if len(rec.Lines) != 2 {
		t.Fatalf("lines = %d", len(rec.Lines))
	}
	if l := rec.Lines[1]; l.Position != 1 || l.UnitPrice != "65.5" || l.LineTotal != "131" {
		t.Errorf("line = %+v", l)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	in := sampleReceipt()
	out, err := fromRecord(toRecord(in, "till-2"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Number != in.Number || !out.Total.Equal(in.Total) || !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("receipt = %+v", out)
	}
	if !out.Change.Valid || !out.Change.Decimal.Equal(in.Change.Decimal) {
		t.Errorf("change = %+v", out.Change)
	}
	for i := range in.Items {
		if !out.Items[i].Price.Equal(in.Items[i].Price) || out.Items[i].Quantity != in.Items[i].Quantity {
			t.Errorf("item %d = %+v", i, out.Items[i])
		}
	}
}

func TestCardReceiptHasNoCashColumns(t *testing.T) {
	in := sampleReceipt()
	in.PaymentMethod = checkout.Card
	in.CashReceived = decimal.NullDecimal{}
	in.Change = decimal.NullDecimal{}

	rec := toRecord(in, "")
	if rec.CashReceived != nil || rec.ChangeAmount != nil {
		t.Errorf("card sale stored cash columns: %+v", rec)
	}
	out, err := fromRecord(rec)
	if err != nil {
		t.Fatal(err)
	}
	if out.Change.Valid {
		t.Error("change should be null")
	}
}

func TestFromRecordBadMoney(t *testing.T) {
	rec := toRecord(sampleReceipt(), "")
	rec.TotalAmount = "abc"
	if _, err := fromRecord(rec); err == nil {
		t.Fatal("expected error for bad total")
	}
}

func TestNewConnectionRequiresDSN(t *testing.T) {
	if _, err := NewConnection(""); err != ErrDSNRequired {
		t.Fatalf("err = %v, want ErrDSNRequired", err)
	}
}
