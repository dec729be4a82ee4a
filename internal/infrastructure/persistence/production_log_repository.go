package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionLogRepository implements ProductionLogRepository using GORM
type GormProductionLogRepository struct {
	db *gorm.DB
}

// NewGormProductionLogRepository creates a new GormProductionLogRepository
func NewGormProductionLogRepository(db *gorm.DB) *GormProductionLogRepository {
	return &GormProductionLogRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormProductionLogRepository) WithTx(tx *gorm.DB) *GormProductionLogRepository {
	return &GormProductionLogRepository{db: tx}
}

// FindByID finds a production log by its ID
func (r *GormProductionLogRepository) FindByID(ctx context.Context, id int64) (*production.ProductionLog, error) {
	var log production.ProductionLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindAll finds all production logs matching the filter
func (r *GormProductionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionLog, error) {
	var logs []production.ProductionLog
	query := applyFilter(r.db.WithContext(ctx).Model(&production.ProductionLog{}), filter, "production_date DESC")

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByProduct finds production logs for one product
func (r *GormProductionLogRepository) FindByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]production.ProductionLog, error) {
	var logs []production.ProductionLog
	query := applyFilter(
		r.db.WithContext(ctx).Model(&production.ProductionLog{}).
			Where("product_id = ?", productID),
		filter, "production_date DESC",
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByDateRange finds production logs within [from, to]
func (r *GormProductionLogRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]production.ProductionLog, error) {
	var logs []production.ProductionLog
	query := applyFilter(
		r.db.WithContext(ctx).Model(&production.ProductionLog{}).
			Where("production_date >= ? AND production_date <= ?", from, to),
		filter, "production_date DESC",
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts production logs matching the filter
func (r *GormProductionLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&production.ProductionLog{}), filter, "")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a production log
func (r *GormProductionLogRepository) Save(ctx context.Context, log *production.ProductionLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// Delete deletes a production log
func (r *GormProductionLogRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&production.ProductionLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
