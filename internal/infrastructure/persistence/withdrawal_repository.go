package persistence

import (
	"context"
	"errors"

	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormWithdrawalRepository) WithTx(tx *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: tx}
}

// FindByID finds a withdrawal by its ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id int64) (*inventory.Withdrawal, error) {
	var withdrawal inventory.Withdrawal
	if err := r.db.WithContext(ctx).First(&withdrawal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

// FindAll finds all withdrawals matching the filter
func (r *GormWithdrawalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Withdrawal, error) {
	var withdrawals []inventory.Withdrawal
	query := applyFilter(r.db.WithContext(ctx).Model(&inventory.Withdrawal{}), filter, "requested_at DESC")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// Count counts withdrawals matching the filter
func (r *GormWithdrawalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Withdrawal{}), filter, "")

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	return r.db.WithContext(ctx).Save(withdrawal).Error
}

// MarkApproved persists the pending -> approved transition. The status guard
// lives in the WHERE clause so two concurrent approvals race on the row and
// exactly one wins.
func (r *GormWithdrawalRepository) MarkApproved(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	return r.markTransition(ctx, withdrawal)
}

// MarkRejected persists the pending -> rejected transition with the same
// guard as MarkApproved.
func (r *GormWithdrawalRepository) MarkRejected(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	return r.markTransition(ctx, withdrawal)
}

func (r *GormWithdrawalRepository) markTransition(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	result := r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
		Where("id = ? AND status = ?", withdrawal.ID, inventory.WithdrawalPending).
		Updates(map[string]interface{}{
			"status":           withdrawal.Status,
			"approved_by":      withdrawal.ApprovedBy,
			"approved_at":      withdrawal.ApprovedAt,
			"rejection_reason": withdrawal.RejectionReason,
			"updated_at":       withdrawal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Zero rows means the guard failed: either the withdrawal does not
		// exist or it already left the pending state.
		var count int64
		if err := r.db.WithContext(ctx).Model(&inventory.Withdrawal{}).
			Where("id = ?", withdrawal.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return inventory.ErrInvalidStateTransition
	}
	return nil
}
