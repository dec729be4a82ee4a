package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormStockRecordRepository) WithTx(tx *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: tx}
}

// ApplyDelta adds delta to the quantity of the (productID, location) record.
// The whole read-modify-write is pushed into one SQL statement so concurrent
// deltas on the same key serialize on the row and never lose an update.
func (r *GormStockRecordRepository) ApplyDelta(ctx context.Context, productID int64, location string, delta decimal.Decimal) error {
	location = strings.TrimSpace(location)
	if location == "" {
		location = inventory.DefaultLocation
	}

	if delta.IsPositive() {
		record, err := inventory.NewStockRecord(productID, location, delta, decimal.Zero)
		if err != nil {
			return err
		}
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "location"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("stock_records.quantity + ?", delta),
				"updated_at": time.Now(),
			}),
		}).Create(record).Error
	}

	result := r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
		Where("product_id = ? AND location = ?", productID, location).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNoSuchStockRecord
	}
	return nil
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id int64) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByKey finds a stock record by its (product, location) key
func (r *GormStockRecordRepository) FindByKey(ctx context.Context, productID int64, location string) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location = ?", productID, location).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds all stock records matching the filter
func (r *GormStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter, "product_id ASC, location ASC")

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAllDetailed finds stock records joined with their product's name and
// unit, for list views
func (r *GormStockRecordRepository) FindAllDetailed(ctx context.Context, filter shared.Filter) ([]inventory.StockDetail, error) {
	var details []inventory.StockDetail
	query := r.db.WithContext(ctx).Table("stock_records").
		Select("stock_records.*, products.name AS product_name, products.unit AS product_unit").
		Joins("LEFT JOIN products ON products.id = stock_records.product_id")
	query = applyFilter(query, filter, "stock_records.product_id ASC, stock_records.location ASC")

	if err := query.Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// FindByProduct finds all stock records for a product across locations
func (r *GormStockRecordRepository) FindByProduct(ctx context.Context, productID int64) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("location ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindLowStock finds records whose quantity is at or below their threshold
func (r *GormStockRecordRepository) FindLowStock(ctx context.Context) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("quantity <= minimum_threshold").
		Order("product_id ASC, location ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts stock records matching the filter
func (r *GormStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter, "")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete deletes a stock record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
