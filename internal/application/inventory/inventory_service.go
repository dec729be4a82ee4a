package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService handles stock record queries and manual stock management
type InventoryService struct {
	stockRepo inventory.StockRecordRepository
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(stockRepo inventory.StockRecordRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{stockRepo: stockRepo, logger: logger}
}

// Create manually creates a stock record, for seeding a location with an
// opening balance
func (s *InventoryService) Create(ctx context.Context, input StockRecordInput) (*inventory.StockRecord, error) {
	record, err := inventory.NewStockRecord(input.ProductID, input.Location, input.Quantity, input.MinimumThreshold)
	if err != nil {
		return nil, err
	}

	if _, err := s.stockRepo.FindByKey(ctx, record.ProductID, record.Location); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	if err := s.stockRepo.Save(ctx, record); err != nil {
		s.logger.Error("Failed to save stock record", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Stock record created",
		zap.Int64("product_id", record.ProductID),
		zap.String("location", record.Location))
	return record, nil
}

// Get returns one stock record by ID
func (s *InventoryService) Get(ctx context.Context, id int64) (*inventory.StockRecord, error) {
	return s.stockRepo.FindByID(ctx, id)
}

// List returns a page of stock records
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[inventory.StockDetail], error) {
	records, err := s.stockRepo.FindAllDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(records, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ByProduct returns all stock records for one product across locations
func (s *InventoryService) ByProduct(ctx context.Context, productID int64) ([]inventory.StockRecord, error) {
	return s.stockRepo.FindByProduct(ctx, productID)
}

// LowStock returns records whose quantity is at or below their threshold
func (s *InventoryService) LowStock(ctx context.Context) ([]inventory.StockRecord, error) {
	return s.stockRepo.FindLowStock(ctx)
}

// Adjust applies a signed delta to the ledger, for corrections and
// deliveries outside the production/sales flows
func (s *InventoryService) Adjust(ctx context.Context, input AdjustStockInput) error {
	if input.Delta.Equal(decimal.Zero) {
		return shared.NewDomainError("INVALID_DELTA", "Adjustment delta cannot be zero")
	}

	if err := s.stockRepo.ApplyDelta(ctx, input.ProductID, input.Location, input.Delta); err != nil {
		return err
	}

	s.logger.Info("Stock adjusted",
		zap.Int64("product_id", input.ProductID),
		zap.String("location", input.Location),
		zap.String("delta", input.Delta.String()))
	return nil
}

// SetThreshold changes the low-stock alert level of a record
func (s *InventoryService) SetThreshold(ctx context.Context, id int64, threshold decimal.Decimal) (*inventory.StockRecord, error) {
	record, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.SetMinimumThreshold(threshold); err != nil {
		return nil, err
	}
	if err := s.stockRepo.Save(ctx, record); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return record, nil
}

// Delete removes a stock record
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return s.stockRepo.Delete(ctx, id)
}
