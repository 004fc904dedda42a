package repository

import (
	"context"

	"posgate/internal/model"
	"posgate/internal/projection"

	"gorm.io/gorm"
)

const inventorySQL = `
SELECT id, name, category, price::float8 AS price, quantity, min_stock, description
FROM products
ORDER BY name`

// ProductRepository is the read-only data access contract for the catalog.
type ProductRepository interface {
	// ListByName returns every product ordered by name.
	ListByName(ctx context.Context) ([]projection.Record, error)

	// CountLowStock counts products at or below their reorder threshold.
	CountLowStock(ctx context.Context) (int64, error)

	Count(ctx context.Context) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) ListByName(ctx context.Context) ([]projection.Record, error) {
	rows, err := r.db.WithContext(ctx).Raw(inventorySQL).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return projection.Rows(rows)
}

func (r *productRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("quantity <= min_stock").Count(&n).Error
	return n, err
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}
