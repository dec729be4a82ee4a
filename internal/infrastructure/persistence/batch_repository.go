package persistence

import (
	"context"
	"errors"

	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormBatchRepository) WithTx(tx *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: tx}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id int64) (*production.Batch, error) {
	var batch production.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (r *GormBatchRepository) detailedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("production_batches").
		Select("production_batches.*, products.name AS product_name, products.unit AS product_unit, products.category AS product_category").
		Joins("LEFT JOIN products ON products.id = production_batches.product_id")
}

// FindDetailedByID finds a batch joined with its product attributes
func (r *GormBatchRepository) FindDetailedByID(ctx context.Context, id int64) (*production.BatchDetail, error) {
	var detail production.BatchDetail
	err := r.detailedQuery(ctx).Where("production_batches.id = ?", id).Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// FindAllDetailed finds batches joined with product attributes, newest
// schedule first
func (r *GormBatchRepository) FindAllDetailed(ctx context.Context, filter shared.Filter) ([]production.BatchDetail, error) {
	var details []production.BatchDetail
	query := r.detailedQuery(ctx)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("production_batches.status = ?", status)
	}
	query = applyFilter(query, filter, "production_batches.scheduled_date DESC, production_batches.id DESC")

	if err := query.Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// Count counts batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&production.Batch{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Delete deletes a batch and its crew assignments
func (r *GormBatchRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&production.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return r.db.WithContext(ctx).Delete(&production.BatchAssignment{}, "batch_id = ?", id).Error
}

// MarkStatus persists a status transition. The prior state lives in the
// WHERE clause so two concurrent transitions race on the row and exactly
// one wins.
func (r *GormBatchRepository) MarkStatus(ctx context.Context, batch *production.Batch, from production.BatchStatus) error {
	result := r.db.WithContext(ctx).Model(&production.Batch{}).
		Where("id = ? AND status = ?", batch.ID, from).
		Updates(map[string]interface{}{
			"status":     batch.Status,
			"updated_at": batch.UpdatedAt,
		})
	return r.resolveGuard(ctx, batch.ID, result)
}

// MarkStage persists a stage change while the batch is still live
func (r *GormBatchRepository) MarkStage(ctx context.Context, batch *production.Batch) error {
	result := r.db.WithContext(ctx).Model(&production.Batch{}).
		Where("id = ? AND status NOT IN ?", batch.ID,
			[]production.BatchStatus{production.BatchCompleted, production.BatchCancelled}).
		Updates(map[string]interface{}{
			"current_stage": batch.CurrentStage,
			"updated_at":    batch.UpdatedAt,
		})
	return r.resolveGuard(ctx, batch.ID, result)
}

func (r *GormBatchRepository) resolveGuard(ctx context.Context, id int64, result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Zero rows means the guard failed: either the batch does not exist
		// or it already moved out of the expected state.
		var count int64
		if err := r.db.WithContext(ctx).Model(&production.Batch{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return production.ErrInvalidStateTransition
	}
	return nil
}

// ReplaceAssignments swaps the full crew of a batch
func (r *GormBatchRepository) ReplaceAssignments(ctx context.Context, batchID int64, assignments []production.BatchAssignment) error {
	if err := r.db.WithContext(ctx).Delete(&production.BatchAssignment{}, "batch_id = ?", batchID).Error; err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}
	for i := range assignments {
		assignments[i].BatchID = batchID
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

// FindCrew finds the assignments for the given batches joined with user names
func (r *GormBatchRepository) FindCrew(ctx context.Context, batchIDs []int64) ([]production.CrewMember, error) {
	if len(batchIDs) == 0 {
		return nil, nil
	}
	var crew []production.CrewMember
	err := r.db.WithContext(ctx).Table("batch_workers").
		Select("batch_workers.batch_id, batch_workers.user_id, batch_workers.role_type, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = batch_workers.user_id").
		Where("batch_workers.batch_id IN ?", batchIDs).
		Order("batch_workers.batch_id ASC, batch_workers.id ASC").
		Scan(&crew).Error
	if err != nil {
		return nil, err
	}
	return crew, nil
}
