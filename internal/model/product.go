package model

import "github.com/shopspring/decimal"

// Product is the catalog/stock row maintained by the desktop application.
// This service only reads it; "low stock" means Quantity <= MinStock and is
// derived, never stored.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"not null;index"`
	Category    string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:5"`
	Description *string
}
