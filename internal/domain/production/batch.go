package production

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// BatchStatus is the lifecycle state of a production batch
type BatchStatus string

const (
	BatchPlanned    BatchStatus = "planned"
	BatchInProgress BatchStatus = "in_progress"
	BatchCompleted  BatchStatus = "completed"
	BatchCancelled  BatchStatus = "cancelled"
)

// BatchStage is the processing step a batch is currently in
type BatchStage string

const (
	StageMixing    BatchStage = "mixing"
	StageForming   BatchStage = "forming"
	StageCooking   BatchStage = "cooking"
	StagePackaging BatchStage = "packaging"
)

// ErrInvalidStateTransition is returned when a batch in a terminal state is
// asked to change status or stage.
var ErrInvalidStateTransition = shared.NewDomainError("INVALID_STATE_TRANSITION", "Batch is not in a state that allows this transition")

// batchTransitions lists the legal status moves. Completed and cancelled
// are terminal.
var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchPlanned:    {BatchInProgress, BatchCancelled},
	BatchInProgress: {BatchCompleted, BatchCancelled},
}

// ValidBatchStage reports whether stage names a known processing step
func ValidBatchStage(stage BatchStage) bool {
	switch stage {
	case StageMixing, StageForming, StageCooking, StagePackaging:
		return true
	}
	return false
}

// ValidBatchStatus reports whether status names a known lifecycle state
func ValidBatchStatus(status BatchStatus) bool {
	switch status {
	case BatchPlanned, BatchInProgress, BatchCompleted, BatchCancelled:
		return true
	}
	return false
}

// Batch is a planned production run. It carries the target quantity and the
// crew assigned to it; material withdrawals reference the batch they draw
// for. Actual output is recorded separately as production logs, so a batch
// never posts to stock itself.
type Batch struct {
	shared.BaseEntity
	BatchNumber    string          `gorm:"size:100;not null;uniqueIndex" json:"batch_number"`
	ProductID      int64           `gorm:"not null;index" json:"product_id"`
	TargetQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"target_quantity"`
	ScheduledDate  time.Time       `gorm:"not null;index" json:"scheduled_date"`
	Status         BatchStatus     `gorm:"size:20;not null;default:'planned';index" json:"status"`
	CurrentStage   BatchStage      `gorm:"size:20;not null;default:'mixing'" json:"current_stage"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "production_batches"
}

// AssignmentRole distinguishes crew members on a batch
type AssignmentRole string

const (
	RoleSupervisorCrew AssignmentRole = "supervisor"
	RoleWorkerCrew     AssignmentRole = "worker"
)

// BatchAssignment links one user to one batch in a crew role
type BatchAssignment struct {
	shared.BaseEntity
	BatchID  int64          `gorm:"not null;index" json:"batch_id"`
	UserID   int64          `gorm:"not null;index" json:"user_id"`
	RoleType AssignmentRole `gorm:"size:20;not null" json:"role_type"`
}

// TableName returns the table name for GORM
func (BatchAssignment) TableName() string {
	return "batch_workers"
}

// NewBatch creates a batch in the planned state at the first stage
func NewBatch(batchNumber string, productID int64, targetQuantity decimal.Decimal, scheduledDate time.Time, notes string) (*Batch, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number is required")
	}
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if !targetQuantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity must be positive")
	}
	if scheduledDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Scheduled date is required")
	}

	return &Batch{
		BaseEntity:     shared.NewBaseEntity(),
		BatchNumber:    batchNumber,
		ProductID:      productID,
		TargetQuantity: targetQuantity,
		ScheduledDate:  scheduledDate,
		Status:         BatchPlanned,
		CurrentStage:   StageMixing,
		Notes:          notes,
	}, nil
}

// NewBatchAssignment links a user to a batch
func NewBatchAssignment(batchID, userID int64, role AssignmentRole) (*BatchAssignment, error) {
	if userID <= 0 {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if role != RoleSupervisorCrew && role != RoleWorkerCrew {
		return nil, shared.NewDomainError("INVALID_ROLE", "Assignment role must be supervisor or worker")
	}
	return &BatchAssignment{
		BaseEntity: shared.NewBaseEntity(),
		BatchID:    batchID,
		UserID:     userID,
		RoleType:   role,
	}, nil
}

// IsTerminal reports whether the batch has reached a final state
func (b *Batch) IsTerminal() bool {
	return b.Status == BatchCompleted || b.Status == BatchCancelled
}

// SetStatus moves the batch to the next lifecycle state. Only the moves in
// the transition table are legal; terminal states never change again.
func (b *Batch) SetStatus(next BatchStatus) error {
	if !ValidBatchStatus(next) {
		return shared.NewDomainError("INVALID_STATUS", "Unknown batch status")
	}
	for _, allowed := range batchTransitions[b.Status] {
		if next == allowed {
			b.Status = next
			b.Touch()
			return nil
		}
	}
	return ErrInvalidStateTransition
}

// SetStage moves the batch to another processing stage. Stage changes are
// free-form between valid stages but stop once the batch is terminal.
func (b *Batch) SetStage(stage BatchStage) error {
	if !ValidBatchStage(stage) {
		return shared.NewDomainError("INVALID_STAGE", "Unknown batch stage")
	}
	if b.IsTerminal() {
		return ErrInvalidStateTransition
	}
	b.CurrentStage = stage
	b.Touch()
	return nil
}

// UpdateDetails changes the plan of a batch that has not finished
func (b *Batch) UpdateDetails(productID int64, targetQuantity decimal.Decimal, scheduledDate time.Time, notes string) error {
	if b.IsTerminal() {
		return ErrInvalidStateTransition
	}
	if productID <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if !targetQuantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Target quantity must be positive")
	}

	b.ProductID = productID
	b.TargetQuantity = targetQuantity
	if !scheduledDate.IsZero() {
		b.ScheduledDate = scheduledDate
	}
	b.Notes = notes
	b.Touch()
	return nil
}
