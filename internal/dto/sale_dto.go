package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateSaleRequest is the body of POST /api/sales. Any tag failure surfaces
// to the client as a single "Missing required fields" response.
type CreateSaleRequest struct {
	Cashier       string            `json:"cashier"        validate:"required"`
	Total         decimal.Decimal   `json:"total"          validate:"required,gt=0"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Items         []SaleItemRequest `json:"items"          validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CreateSaleResponse struct {
	SaleID  int64  `json:"sale_id"`
	Message string `json:"message"`
}
