package service

import (
	"context"
	"fmt"
	"time"

	"posgate/internal/dto"
	"posgate/internal/model"
	"posgate/internal/projection"
	"posgate/internal/repository"
	"posgate/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaleService interface {
	// CreateSale writes the sale and all of its items in one transaction.
	// A failing item insert rolls the whole sale back.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error)
	ListRecent(ctx context.Context) ([]projection.Record, error)
}

type saleService struct {
	repo       repository.SaleRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(repo repository.SaleRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	sale := model.Sale{
		Cashier:       req.Cashier,
		SaleTime:      time.Now(),
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
	}
	for _, item := range req.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Record the sale in the activity log off the request path. Best effort:
	// a full queue or unreachable Redis never fails the sale.
	if s.dispatcher != nil {
		job := worker.ActivityJob{
			Username: req.Cashier,
			Action:   "Sale",
			Details:  fmt.Sprintf("Sale #%d created via API (%s)", sale.ID, req.PaymentMethod),
		}
		if err := s.dispatcher.EnqueueActivity(ctx, job); err != nil {
			log.Warn().Err(err).Int64("sale_id", sale.ID).Msg("failed to enqueue activity job")
		}
	}

	return &dto.CreateSaleResponse{
		SaleID:  sale.ID,
		Message: "Sale created successfully",
	}, nil
}

func (s *saleService) ListRecent(ctx context.Context) ([]projection.Record, error) {
	return s.repo.ListRecent(ctx)
}
