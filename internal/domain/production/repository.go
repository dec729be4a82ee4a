package production

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/shared"
)

// BatchDetail is a batch joined with its product attributes for list views
type BatchDetail struct {
	Batch
	ProductName     string `gorm:"column:product_name" json:"product_name"`
	ProductUnit     string `gorm:"column:product_unit" json:"product_unit"`
	ProductCategory string `gorm:"column:product_category" json:"product_category,omitempty"`
}

// CrewMember is a batch assignment joined with the user's name
type CrewMember struct {
	BatchID  int64          `gorm:"column:batch_id" json:"batch_id"`
	UserID   int64          `gorm:"column:user_id" json:"user_id"`
	UserName string         `gorm:"column:user_name" json:"user_name"`
	RoleType AssignmentRole `gorm:"column:role_type" json:"role_type"`
}

// BatchRepository defines the persistence interface for production batches.
// MarkStatus and MarkStage enforce their guards in SQL so concurrent
// transitions on the same batch cannot both succeed.
type BatchRepository interface {
	FindByID(ctx context.Context, id int64) (*Batch, error)
	FindDetailedByID(ctx context.Context, id int64) (*BatchDetail, error)
	FindAllDetailed(ctx context.Context, filter shared.Filter) ([]BatchDetail, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, id int64) error

	// MarkStatus persists a status transition out of the given prior state.
	// It returns ErrInvalidStateTransition when the batch already left that
	// state and ErrNotFound when it does not exist.
	MarkStatus(ctx context.Context, batch *Batch, from BatchStatus) error
	// MarkStage persists a stage change for a non-terminal batch with the
	// same guarantees as MarkStatus.
	MarkStage(ctx context.Context, batch *Batch) error

	// ReplaceAssignments swaps the full crew of a batch
	ReplaceAssignments(ctx context.Context, batchID int64, assignments []BatchAssignment) error
	FindCrew(ctx context.Context, batchIDs []int64) ([]CrewMember, error)
}

// ProductionLogRepository defines the persistence interface for production logs
type ProductionLogRepository interface {
	FindByID(ctx context.Context, id int64) (*ProductionLog, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionLog, error)
	FindByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]ProductionLog, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]ProductionLog, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, log *ProductionLog) error
	Delete(ctx context.Context, id int64) error
}
