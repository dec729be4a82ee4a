package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormSaleRepository) WithTx(tx *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: tx}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}), filter, "sale_date DESC")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByDateRange finds sales within [from, to]
func (r *GormSaleRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.Sale{}).
			Where("sale_date >= ? AND sale_date <= ?", from, to),
		filter, "sale_date DESC",
	)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Sale{}), filter, "")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Delete deletes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&trade.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkCompleted persists the pending -> completed transition. The status
// guard lives in the WHERE clause; concurrent completions race on the row
// and exactly one wins.
func (r *GormSaleRepository) MarkCompleted(ctx context.Context, sale *trade.Sale) error {
	return r.markTransition(ctx, sale)
}

// MarkCancelled persists the pending -> cancelled transition with the same
// guarantees as MarkCompleted.
func (r *GormSaleRepository) MarkCancelled(ctx context.Context, sale *trade.Sale) error {
	return r.markTransition(ctx, sale)
}

func (r *GormSaleRepository) markTransition(ctx context.Context, sale *trade.Sale) error {
	result := r.db.WithContext(ctx).Model(&trade.Sale{}).
		Where("id = ? AND status = ?", sale.ID, trade.SalePending).
		Updates(map[string]interface{}{
			"status":       sale.Status,
			"completed_at": sale.CompletedAt,
			"updated_at":   sale.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&trade.Sale{}).
			Where("id = ?", sale.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return trade.ErrInvalidStateTransition
	}
	return nil
}
