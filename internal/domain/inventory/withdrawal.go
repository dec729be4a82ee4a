package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// WithdrawalStatus represents a withdrawal's position in its approval lifecycle
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a request to take material out of a stock record.
// Lifecycle: pending -> approved | rejected; both outcomes are terminal.
// Approval deducts the requested quantity from the referenced stock record
// exactly once, at the moment of the transition.
type Withdrawal struct {
	shared.BaseEntity
	StockRecordID     int64            `gorm:"not null;index"`
	RequestedQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	RequestedBy       int64            `gorm:"not null;index"`
	BatchID           *int64           `gorm:"index"`
	Purpose           string           `gorm:"size:500"`
	Status            WithdrawalStatus `gorm:"size:20;not null;default:'pending';index"`
	RequestedAt       time.Time        `gorm:"not null"`
	ApprovedBy        *int64
	ApprovedAt        *time.Time
	RejectionReason   string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Withdrawal) TableName() string {
	return "material_withdrawals"
}

// NewWithdrawal creates a pending withdrawal request
func NewWithdrawal(stockRecordID int64, quantity decimal.Decimal, requestedBy int64, batchID *int64, purpose string) (*Withdrawal, error) {
	if stockRecordID <= 0 {
		return nil, shared.NewDomainError("INVALID_STOCK_RECORD", "Stock record ID is required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	if requestedBy <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requesting user is required")
	}

	return &Withdrawal{
		BaseEntity:        shared.NewBaseEntity(),
		StockRecordID:     stockRecordID,
		RequestedQuantity: quantity,
		RequestedBy:       requestedBy,
		BatchID:           batchID,
		Purpose:           strings.TrimSpace(purpose),
		Status:            WithdrawalPending,
		RequestedAt:       time.Now(),
	}, nil
}

// IsTerminal reports whether the withdrawal has reached a final state
func (w *Withdrawal) IsTerminal() bool {
	return w.Status == WithdrawalApproved || w.Status == WithdrawalRejected
}

// Approve transitions the withdrawal from pending to approved.
// The transition is only legal from pending; terminal states are immutable.
func (w *Withdrawal) Approve(approverID int64) error {
	if w.Status != WithdrawalPending {
		return ErrInvalidStateTransition
	}
	if approverID <= 0 {
		return shared.NewDomainError("INVALID_APPROVER", "Approving user is required")
	}
	now := time.Now()
	w.Status = WithdrawalApproved
	w.ApprovedBy = &approverID
	w.ApprovedAt = &now
	w.Touch()
	return nil
}

// Reject transitions the withdrawal from pending to rejected
func (w *Withdrawal) Reject(approverID int64, reason string) error {
	if w.Status != WithdrawalPending {
		return ErrInvalidStateTransition
	}
	if approverID <= 0 {
		return shared.NewDomainError("INVALID_APPROVER", "Approving user is required")
	}
	now := time.Now()
	w.Status = WithdrawalRejected
	w.ApprovedBy = &approverID
	w.ApprovedAt = &now
	w.RejectionReason = strings.TrimSpace(reason)
	w.Touch()
	return nil
}
