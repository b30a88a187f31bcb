package models

import "time"

// SaleRecord is one completed sale as printed on its receipt. Money is
// stored as decimal strings.
type SaleRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	ReceiptNumber   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	TransactionID   string    `gorm:"type:varchar(64);not null"`
	SaleID          string    `gorm:"type:varchar(36);not null"`
	TerminalID      string    `gorm:"type:varchar(64);index"`
	CashierName     string    `gorm:"type:varchar(128);not null"`
	PaymentMethod   string    `gorm:"type:varchar(32);not null"`
	TotalAmount     string    `gorm:"type:varchar(32);not null"`
	CashReceived    *string   `gorm:"type:varchar(32)"`
	ChangeAmount    *string   `gorm:"type:varchar(32)"`
	SoldAt          time.Time `gorm:"index;not null"`
	TimestampSource string    `gorm:"type:varchar(16);not null"`
	CreatedAt       time.Time

	Lines []SaleLineRecord `gorm:"foreignKey:SaleRecordID"`
}

type SaleLineRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	SaleRecordID int64  `gorm:"index;not null"`
	Position     int    `gorm:"not null"`
	ProductID    string `gorm:"type:varchar(64);not null"`
	ProductName  string `gorm:"type:varchar(128);not null"`
	Quantity     int    `gorm:"not null"`
	UnitPrice    string `gorm:"type:varchar(32);not null"`
	LineTotal    string `gorm:"type:varchar(32);not null"`
}
