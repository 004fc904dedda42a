package repository

import (
	"context"

	"posgate/internal/model"
	"posgate/internal/projection"

	"gorm.io/gorm"
)

// recentSalesSQL joins sales with their line items and counts items per sale.
// Money columns are cast to float8 so the projector sees JSON numbers
// regardless of how the driver surfaces NUMERIC.
const recentSalesSQL = `
SELECT s.id, s.cashier, s.sale_time, s.total::float8 AS total, s.payment_method,
       COUNT(si.id) AS item_count
FROM sales s
LEFT JOIN sales_items si ON si.sale_id = s.id
GROUP BY s.id
ORDER BY s.sale_time DESC
LIMIT 50`

// SaleRepository defines the data access contract for sales.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type SaleRepository interface {
	// Create persists a sale inside tx. Items must already be attached to the
	// sale; their SaleID is filled after the parent row returns its id.
	Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error

	// ListRecent returns the 50 most recent sales, newest first, each with an
	// item_count column.
	ListRecent(ctx context.Context) ([]projection.Record, error)

	// TotalsAllTime and TotalsToday back the summary aggregates. "Today" is
	// the server's local calendar date.
	TotalsAllTime(ctx context.Context) (orders int64, revenue float64, err error)
	TotalsToday(ctx context.Context) (orders int64, revenue float64, err error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error {
	items := sale.Items
	sale.Items = nil
	if err := tx.WithContext(ctx).Create(sale).Error; err != nil {
		return err
	}
	// The parent id exists now; items follow in strict sequence within the
	// same transaction, so a failing item rolls the sale back too.
	for i := range items {
		items[i].SaleID = sale.ID
		if err := tx.WithContext(ctx).Create(&items[i]).Error; err != nil {
			return err
		}
	}
	sale.Items = items
	return nil
}

func (r *saleRepo) ListRecent(ctx context.Context) ([]projection.Record, error) {
	rows, err := r.db.WithContext(ctx).Raw(recentSalesSQL).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return projection.Rows(rows)
}

func (r *saleRepo) TotalsAllTime(ctx context.Context) (int64, float64, error) {
	var orders int64
	var revenue float64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*), COALESCE(SUM(total), 0)::float8 FROM sales`).
		Row().Scan(&orders, &revenue)
	return orders, revenue, err
}

func (r *saleRepo) TotalsToday(ctx context.Context) (int64, float64, error) {
	var orders int64
	var revenue float64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*), COALESCE(SUM(total), 0)::float8 FROM sales WHERE DATE(sale_time) = CURRENT_DATE`).
		Row().Scan(&orders, &revenue)
	return orders, revenue, err
}
