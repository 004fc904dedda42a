package service

import (
	"context"

	"posgate/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReportService computes the dashboard summary. Each of the four aggregates is
// independently best-effort: a failing statement logs a warning and its fields
// are omitted, the rest of the summary still goes out.
type ReportService interface {
	Summary(ctx context.Context) map[string]any
}

type reportService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
}

func NewReportService(sales repository.SaleRepository, products repository.ProductRepository) ReportService {
	return &reportService{sales: sales, products: products}
}

func (s *reportService) Summary(ctx context.Context) map[string]any {
	summary := make(map[string]any, 6)

	if orders, revenue, err := s.sales.TotalsAllTime(ctx); err == nil {
		summary["total_sales"] = revenue
		summary["total_orders"] = orders
	} else {
		log.Warn().Err(err).Msg("summary: all-time totals failed")
	}

	if orders, revenue, err := s.sales.TotalsToday(ctx); err == nil {
		summary["today_sales"] = revenue
		summary["today_orders"] = orders
	} else {
		log.Warn().Err(err).Msg("summary: today totals failed")
	}

	if n, err := s.products.CountLowStock(ctx); err == nil {
		summary["low_stock_items"] = n
	} else {
		log.Warn().Err(err).Msg("summary: low stock count failed")
	}

	if n, err := s.products.Count(ctx); err == nil {
		summary["total_products"] = n
	} else {
		log.Warn().Err(err).Msg("summary: product count failed")
	}

	return summary
}
