package inventory

import (
	"context"

	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WithdrawalService coordinates the withdrawal approval workflow.
// Approval is the one place a withdrawal touches the stock ledger: the
// status flip and the negative delta commit in the same transaction, so a
// ledger failure rolls the approval back and a lost status race applies no
// delta at all.
type WithdrawalService struct {
	db             *persistence.Database
	withdrawalRepo *persistence.GormWithdrawalRepository
	stockRepo      *persistence.GormStockRecordRepository
	logger         *zap.Logger
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(
	db *persistence.Database,
	withdrawalRepo *persistence.GormWithdrawalRepository,
	stockRepo *persistence.GormStockRecordRepository,
	logger *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		db:             db,
		withdrawalRepo: withdrawalRepo,
		stockRepo:      stockRepo,
		logger:         logger,
	}
}

// Create registers a pending withdrawal request against a stock record.
// No stock moves until the request is approved.
func (s *WithdrawalService) Create(ctx context.Context, input CreateWithdrawalInput) (*WithdrawalView, error) {
	record, err := s.stockRepo.FindByID(ctx, input.StockRecordID)
	if err != nil {
		return nil, err
	}

	withdrawal, err := inventory.NewWithdrawal(input.StockRecordID, input.Quantity, input.RequestedBy, input.BatchID, input.Purpose)
	if err != nil {
		return nil, err
	}

	if err := s.withdrawalRepo.Save(ctx, withdrawal); err != nil {
		s.logger.Error("Failed to save withdrawal", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Withdrawal requested",
		zap.Int64("withdrawal_id", withdrawal.ID),
		zap.Int64("stock_record_id", record.ID),
		zap.String("quantity", withdrawal.RequestedQuantity.String()))
	return s.view(withdrawal, record), nil
}

// Get returns one withdrawal with its stock record context
func (s *WithdrawalService) Get(ctx context.Context, id int64) (*WithdrawalView, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := s.stockRepo.FindByID(ctx, withdrawal.StockRecordID)
	if err != nil {
		return nil, err
	}
	return s.view(withdrawal, record), nil
}

// List returns a page of withdrawals; filter["status"] narrows by lifecycle state
func (s *WithdrawalService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WithdrawalView], error) {
	withdrawals, err := s.withdrawalRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.withdrawalRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]WithdrawalView, 0, len(withdrawals))
	for i := range withdrawals {
		record, err := s.stockRepo.FindByID(ctx, withdrawals[i].StockRecordID)
		if err != nil {
			return nil, err
		}
		views = append(views, *s.view(&withdrawals[i], record))
	}

	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Approve transitions a pending withdrawal to approved and deducts the
// requested quantity from the stock record. The guarded status update and
// the ledger delta run in one transaction: if either fails, neither sticks.
func (s *WithdrawalService) Approve(ctx context.Context, id int64, approverID int64) (*WithdrawalView, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := s.stockRepo.FindByID(ctx, withdrawal.StockRecordID)
	if err != nil {
		return nil, err
	}

	if err := withdrawal.Approve(approverID); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.withdrawalRepo.WithTx(tx).MarkApproved(ctx, withdrawal); err != nil {
			return err
		}
		return s.stockRepo.WithTx(tx).ApplyDelta(ctx, record.ProductID, record.Location, withdrawal.RequestedQuantity.Neg())
	})
	if err != nil {
		s.logger.Warn("Withdrawal approval failed",
			zap.Int64("withdrawal_id", id),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Withdrawal approved",
		zap.Int64("withdrawal_id", withdrawal.ID),
		zap.Int64("approved_by", approverID),
		zap.String("quantity", withdrawal.RequestedQuantity.String()))
	return s.view(withdrawal, record), nil
}

// Reject transitions a pending withdrawal to rejected. Stock is untouched.
func (s *WithdrawalService) Reject(ctx context.Context, id int64, approverID int64, reason string) (*WithdrawalView, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := s.stockRepo.FindByID(ctx, withdrawal.StockRecordID)
	if err != nil {
		return nil, err
	}

	if err := withdrawal.Reject(approverID, reason); err != nil {
		return nil, err
	}

	if err := s.withdrawalRepo.MarkRejected(ctx, withdrawal); err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal rejected",
		zap.Int64("withdrawal_id", withdrawal.ID),
		zap.Int64("rejected_by", approverID))
	return s.view(withdrawal, record), nil
}

func (s *WithdrawalService) view(w *inventory.Withdrawal, record *inventory.StockRecord) *WithdrawalView {
	return &WithdrawalView{
		ID:                w.ID,
		StockRecordID:     w.StockRecordID,
		ProductID:         record.ProductID,
		Location:          record.Location,
		RequestedQuantity: w.RequestedQuantity,
		RequestedBy:       w.RequestedBy,
		BatchID:           w.BatchID,
		Purpose:           w.Purpose,
		Status:            string(w.Status),
		RequestedAt:       w.RequestedAt,
		ApprovedBy:        w.ApprovedBy,
		ApprovedAt:        w.ApprovedAt,
		RejectionReason:   w.RejectionReason,
	}
}
