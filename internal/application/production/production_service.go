package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateProductionLogInput contains the input for recording a production run
type CreateProductionLogInput struct {
	ProductID        int64
	BatchNumber      string
	QuantityProduced decimal.Decimal
	OutputLocation   string
	SupervisorID     int64
	ProductionDate   time.Time
	Notes            string
}

// UpdateProductionLogInput contains the descriptive fields a posted run may change
type UpdateProductionLogInput struct {
	BatchNumber    string
	ProductionDate time.Time
	Notes          string
}

// ProductionService records production runs and posts their output to stock.
// Recording a run and crediting the output location happen in one
// transaction: a run is never persisted without its stock effect.
type ProductionService struct {
	db        *persistence.Database
	logRepo   *persistence.GormProductionLogRepository
	stockRepo *persistence.GormStockRecordRepository
	logger    *zap.Logger
}

// NewProductionService creates a new production service
func NewProductionService(
	db *persistence.Database,
	logRepo *persistence.GormProductionLogRepository,
	stockRepo *persistence.GormStockRecordRepository,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{db: db, logRepo: logRepo, stockRepo: stockRepo, logger: logger}
}

// Create records a production run and credits the produced quantity to the
// output location in the same transaction
func (s *ProductionService) Create(ctx context.Context, input CreateProductionLogInput) (*production.ProductionLog, error) {
	log, err := production.NewProductionLog(
		input.ProductID,
		input.BatchNumber,
		input.QuantityProduced,
		input.OutputLocation,
		input.SupervisorID,
		input.ProductionDate,
		input.Notes,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.WithTx(tx).Save(ctx, log); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, log.ProductID, log.OutputLocation, log.QuantityProduced)
	})
	if err != nil {
		s.logger.Error("Failed to record production run", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Production run recorded",
		zap.Int64("production_log_id", log.ID),
		zap.String("batch_number", log.BatchNumber),
		zap.String("quantity", log.QuantityProduced.String()))
	return log, nil
}

// Get returns one production log by ID
func (s *ProductionService) Get(ctx context.Context, id int64) (*production.ProductionLog, error) {
	return s.logRepo.FindByID(ctx, id)
}

// List returns a page of production logs
func (s *ProductionService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[production.ProductionLog], error) {
	logs, err := s.logRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.logRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(logs, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ByProduct returns the production history of one product
func (s *ProductionService) ByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]production.ProductionLog, error) {
	return s.logRepo.FindByProduct(ctx, productID, filter)
}

// ByDateRange returns production logs whose production date falls in [from, to]
func (s *ProductionService) ByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]production.ProductionLog, error) {
	return s.logRepo.FindByDateRange(ctx, from, to, filter)
}

// Update changes the descriptive fields of a run. The produced quantity is
// immutable because its stock effect has already been posted.
func (s *ProductionService) Update(ctx context.Context, id int64, input UpdateProductionLogInput) (*production.ProductionLog, error) {
	log, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := log.Update(input.BatchNumber, input.ProductionDate, input.Notes); err != nil {
		return nil, err
	}
	if err := s.logRepo.Save(ctx, log); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return log, nil
}

// Delete removes a run and reverses its stock credit in the same transaction
func (s *ProductionService) Delete(ctx context.Context, id int64) error {
	log, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.logRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, log.ProductID, log.OutputLocation, log.QuantityProduced.Neg())
	})
	if err != nil {
		s.logger.Error("Failed to delete production run", zap.Error(err))
		return err
	}

	s.logger.Info("Production run deleted", zap.Int64("production_log_id", id))
	return nil
}
