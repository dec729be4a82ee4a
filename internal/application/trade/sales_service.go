package trade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/domain/trade"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateSaleInput contains the input for recording a sale
type CreateSaleInput struct {
	ProductID  int64
	CustomerID *int64
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Location   string
	SaleDate   time.Time
	Notes      string
	// Complete records and fulfills the sale in one call
	Complete bool
}

// UpdateSaleInput contains the fields a pending sale may change
type UpdateSaleInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	SaleDate  time.Time
	Notes     string
}

// SalesService records sales and fulfills them against the stock ledger.
// Completion is the only sale event that moves stock: the guarded status
// flip and the negative delta commit in one transaction, so a sale is
// fulfilled at most once no matter how many callers race on it.
type SalesService struct {
	db        *persistence.Database
	saleRepo  *persistence.GormSaleRepository
	stockRepo *persistence.GormStockRecordRepository
	logger    *zap.Logger
}

// NewSalesService creates a new sales service
func NewSalesService(
	db *persistence.Database,
	saleRepo *persistence.GormSaleRepository,
	stockRepo *persistence.GormStockRecordRepository,
	logger *zap.Logger,
) *SalesService {
	return &SalesService{db: db, saleRepo: saleRepo, stockRepo: stockRepo, logger: logger}
}

// Create records a sale. With input.Complete set the sale is fulfilled
// immediately: the record and its stock deduction commit together.
func (s *SalesService) Create(ctx context.Context, input CreateSaleInput) (*trade.Sale, error) {
	sale, err := trade.NewSale(input.ProductID, input.CustomerID, input.Quantity, input.UnitPrice, input.Location, input.SaleDate, input.Notes)
	if err != nil {
		return nil, err
	}

	if !input.Complete {
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			s.logger.Error("Failed to save sale", zap.Error(err))
			return nil, shared.ErrStorageFailure
		}
		s.logger.Info("Sale recorded", zap.Int64("sale_id", sale.ID))
		return sale, nil
	}

	if err := sale.Complete(); err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.WithTx(tx).Save(ctx, sale); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, sale.ProductID, sale.Location, sale.Quantity.Neg())
	})
	if err != nil {
		s.logger.Warn("Failed to record completed sale", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sale recorded and completed",
		zap.Int64("sale_id", sale.ID),
		zap.String("total", sale.Total().String()))
	return sale, nil
}

// Get returns one sale by ID
func (s *SalesService) Get(ctx context.Context, id int64) (*trade.Sale, error) {
	return s.saleRepo.FindByID(ctx, id)
}

// List returns a page of sales; filter["status"] narrows by lifecycle state
func (s *SalesService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[trade.Sale], error) {
	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(sales, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ByDateRange returns sales whose sale date falls in [from, to]
func (s *SalesService) ByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Sale, error) {
	return s.saleRepo.FindByDateRange(ctx, from, to, filter)
}

// Complete fulfills a pending sale: the status flip and the stock deduction
// commit in one transaction, and a sale already terminal fails without
// touching stock.
func (s *SalesService) Complete(ctx context.Context, id int64) (*trade.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Complete(); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.WithTx(tx).MarkCompleted(ctx, sale); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, sale.ProductID, sale.Location, sale.Quantity.Neg())
	})
	if err != nil {
		s.logger.Warn("Sale completion failed", zap.Int64("sale_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sale completed",
		zap.Int64("sale_id", sale.ID),
		zap.String("total", sale.Total().String()))
	return sale, nil
}

// Cancel cancels a pending sale. Stock is untouched.
func (s *SalesService) Cancel(ctx context.Context, id int64) (*trade.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Cancel(); err != nil {
		return nil, err
	}
	if err := s.saleRepo.MarkCancelled(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("Sale cancelled", zap.Int64("sale_id", sale.ID))
	return sale, nil
}

// Update changes a pending sale's terms
func (s *SalesService) Update(ctx context.Context, id int64, input UpdateSaleInput) (*trade.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.UpdateDetails(input.Quantity, input.UnitPrice, input.SaleDate, input.Notes); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return sale, nil
}

// Delete removes a sale. A completed sale's stock deduction is reversed in
// the same transaction so the ledger stays consistent with the books.
func (s *SalesService) Delete(ctx context.Context, id int64) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if sale.Status != trade.SaleCompleted {
		return s.saleRepo.Delete(ctx, id)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, sale.ProductID, sale.Location, sale.Quantity)
	})
	if err != nil {
		s.logger.Error("Failed to delete sale", zap.Int64("sale_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Sale deleted", zap.Int64("sale_id", id))
	return nil
}
