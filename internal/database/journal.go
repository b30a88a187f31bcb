package database

import (
	"context"

	"sarisari-pos/internal/cart"
	"sarisari-pos/internal/checkout"
	"sarisari-pos/internal/database/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReceiptNotFound = errors.New("receipt not found")

// Journal keeps completed receipts on the terminal so they can be
// reprinted without the backend.
type Journal struct {
	db       *gorm.DB
	terminal string
}

func NewJournal(db *gorm.DB, terminal string) *Journal {
	return &Journal{db: db, terminal: terminal}
}

// Record stores r. Recording the same receipt twice is a no-op.
func (j *Journal) Record(ctx context.Context, r checkout.Receipt) error {
	rec := toRecord(r, j.terminal)
	err := j.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "receipt_number"}}, DoNothing: true}).
		Create(&rec).Error
	return errors.Wrapf(err, "failed to journal receipt %s", r.Number)
}

func (j *Journal) Find(ctx context.Context, receiptNumber string) (*checkout.Receipt, error) {
	var rec models.SaleRecord
	err := j.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("receipt_number = ?", receiptNumber).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load receipt %s", receiptNumber)
	}
	r, err := fromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Recent returns up to limit receipts, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]checkout.Receipt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var recs []models.SaleRecord
	err := j.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("sold_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list receipts")
	}

	out := make([]checkout.Receipt, 0, len(recs))
	for _, rec := range recs {
		r, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func toRecord(r checkout.Receipt, terminal string) models.SaleRecord {
	rec := models.SaleRecord{
		ReceiptNumber:   r.Number,
		TransactionID:   r.TransactionID,
		SaleID:          r.SaleID,
		TerminalID:      terminal,
		CashierName:     r.CashierName,
		PaymentMethod:   r.PaymentMethod,
		TotalAmount:     r.Total.String(),
		SoldAt:          r.Timestamp.UTC(),
		TimestampSource: r.TimestampSource,
		Lines:           make([]models.SaleLineRecord, len(r.Items)),
	}
	if r.CashReceived.Valid {
		s := r.CashReceived.Decimal.String()
		rec.CashReceived = &s
	}
	if r.Change.Valid {
		s := r.Change.Decimal.String()
		rec.ChangeAmount = &s
	}
	for i, l := range r.Items {
		rec.Lines[i] = models.SaleLineRecord{
			Position:    i,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price.String(),
			LineTotal:   l.Subtotal().String(),
		}
	}
	return rec
}

func fromRecord(rec models.SaleRecord) (checkout.Receipt, error) {
	total, err := decimal.NewFromString(rec.TotalAmount)
	if err != nil {
		return checkout.Receipt{}, errors.Wrapf(err, "receipt %s: bad total", rec.ReceiptNumber)
	}
	r := checkout.Receipt{
		Number:          rec.ReceiptNumber,
		TransactionID:   rec.TransactionID,
		SaleID:          rec.SaleID,
		Total:           total,
		PaymentMethod:   rec.PaymentMethod,
		CashierName:     rec.CashierName,
		Timestamp:       rec.SoldAt,
		TimestampSource: rec.TimestampSource,
		Items:           make([]cart.Line, len(rec.Lines)),
	}
	if r.CashReceived, err = nullDecimal(rec.CashReceived); err != nil {
		return checkout.Receipt{}, errors.Wrapf(err, "receipt %s: bad cash received", rec.ReceiptNumber)
	}
	if r.Change, err = nullDecimal(rec.ChangeAmount); err != nil {
		return checkout.Receipt{}, errors.Wrapf(err, "receipt %s: bad change", rec.ReceiptNumber)
	}
	for i, l := range rec.Lines {
		price, err := decimal.NewFromString(l.UnitPrice)
		if err != nil {
			return checkout.Receipt{}, errors.Wrapf(err, "receipt %s: bad price on line %d", rec.ReceiptNumber, i)
		}
		r.Items[i] = cart.Line{ProductID: l.ProductID, ProductName: l.ProductName, Price: price, Quantity: l.Quantity}
	}
	return r, nil
}

func nullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
