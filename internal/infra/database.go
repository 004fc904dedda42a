package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and bootstraps the
// schema with idempotent DDL. The desktop application shares these tables, so
// every statement is guarded (IF NOT EXISTS) and safe to re-run against a
// database that already carries data.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := EnsureSchema(db); err != nil {
		return nil, fmt.Errorf("schema bootstrap: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the POS tables and indexes when absent. Exported so the
// integration tests can bootstrap a fresh container database.
func EnsureSchema(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"create products", `
CREATE TABLE IF NOT EXISTS products (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT           NOT NULL,
    category    TEXT           NOT NULL,
    price       NUMERIC(10,2)  NOT NULL,
    quantity    INT            NOT NULL DEFAULT 0,
    min_stock   INT            NOT NULL DEFAULT 5,
    description TEXT
)`},
		{"create sales", `
CREATE TABLE IF NOT EXISTS sales (
    id             BIGSERIAL PRIMARY KEY,
    cashier        TEXT          NOT NULL,
    sale_time      TIMESTAMPTZ   NOT NULL,
    total          NUMERIC(10,2) NOT NULL CHECK (total > 0),
    payment_method TEXT          NOT NULL
)`},
		{"create sales_items", `
CREATE TABLE IF NOT EXISTS sales_items (
    id           BIGSERIAL PRIMARY KEY,
    sale_id      BIGINT        NOT NULL REFERENCES sales(id),
    product_name TEXT          NOT NULL,
    quantity     INT           NOT NULL,
    price        NUMERIC(10,2) NOT NULL
)`},
		{"create activity_log", `
CREATE TABLE IF NOT EXISTS activity_log (
    id        BIGSERIAL PRIMARY KEY,
    username  TEXT        NOT NULL,
    action    TEXT        NOT NULL,
    details   TEXT,
    timestamp TIMESTAMPTZ NOT NULL
)`},
		{"create users", `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'cashier'
)`},
		{"index sales.sale_time",
			`CREATE INDEX IF NOT EXISTS idx_sales_sale_time ON sales (sale_time DESC)`},
		{"index sales_items.sale_id",
			`CREATE INDEX IF NOT EXISTS idx_sales_items_sale_id ON sales_items (sale_id)`},
		{"index activity_log.timestamp",
			`CREATE INDEX IF NOT EXISTS idx_activity_log_timestamp ON activity_log (timestamp DESC)`},
		{"index products.name",
			`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
