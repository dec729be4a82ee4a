package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// StockLedger applies signed quantity deltas to stock records.
// It is the only sanctioned mutator of stock quantity: production completion,
// sale completion and withdrawal approval all route through ApplyDelta.
// Implementations must evaluate the per-key update atomically in a single
// statement so that concurrent deltas on the same key never lose an update.
type StockLedger interface {
	// ApplyDelta adds delta to the quantity of the (productID, location)
	// record. A positive delta creates the record (quantity = delta) when it
	// does not exist; a non-positive delta against a missing record fails
	// with ErrNoSuchStockRecord and creates nothing.
	ApplyDelta(ctx context.Context, productID int64, location string, delta decimal.Decimal) error
}

// StockRecordRepository defines the persistence interface for stock records
type StockRecordRepository interface {
	StockLedger
	FindByID(ctx context.Context, id int64) (*StockRecord, error)
	FindByKey(ctx context.Context, productID int64, location string) (*StockRecord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRecord, error)
	FindAllDetailed(ctx context.Context, filter shared.Filter) ([]StockDetail, error)
	FindByProduct(ctx context.Context, productID int64) ([]StockRecord, error)
	FindLowStock(ctx context.Context) ([]StockRecord, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, record *StockRecord) error
	Delete(ctx context.Context, id int64) error
}

// WithdrawalRepository defines the persistence interface for withdrawals.
// Transition methods enforce the pending guard at the storage layer so two
// concurrent approvals of the same withdrawal cannot both succeed.
type WithdrawalRepository interface {
	FindByID(ctx context.Context, id int64) (*Withdrawal, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Withdrawal, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, withdrawal *Withdrawal) error

	// MarkApproved persists the pending -> approved transition. It returns
	// ErrInvalidStateTransition when the withdrawal is already terminal and
	// ErrNotFound when it does not exist.
	MarkApproved(ctx context.Context, withdrawal *Withdrawal) error
	// MarkRejected persists the pending -> rejected transition with the same
	// guarantees as MarkApproved.
	MarkRejected(ctx context.Context, withdrawal *Withdrawal) error
}
