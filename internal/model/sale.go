package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one completed transaction recorded at the register or via the API.
// SaleTime is always server-assigned; rows are immutable once written.
type Sale struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Cashier       string          `gorm:"not null"`
	SaleTime      time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"not null"`

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale. Items never exist without a parent sale;
// they are inserted in the same transaction that creates the Sale row.
type SaleItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	SaleID      int64           `gorm:"not null;index"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName keeps the table the desktop application already uses.
func (SaleItem) TableName() string { return "sales_items" }
