package trade

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/shared"
)

// SaleRepository defines the persistence interface for sales.
// Transition methods enforce the pending guard at the storage layer so a
// sale can never be completed or cancelled twice.
type SaleRepository interface {
	FindByID(ctx context.Context, id int64) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id int64) error

	// MarkCompleted persists the pending -> completed transition. It returns
	// ErrInvalidStateTransition when the sale is already terminal and
	// ErrNotFound when it does not exist.
	MarkCompleted(ctx context.Context, sale *Sale) error
	// MarkCancelled persists the pending -> cancelled transition with the
	// same guarantees as MarkCompleted.
	MarkCancelled(ctx context.Context, sale *Sale) error
}
