package production

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BatchInput contains the plan of a production batch
type BatchInput struct {
	ProductID      int64
	TargetQuantity decimal.Decimal
	ScheduledDate  time.Time
	Notes          string
	SupervisorIDs  []int64
	WorkerIDs      []int64
}

// BatchView is the batch representation returned to clients: the plan, the
// product it produces and the crew assigned to it
type BatchView struct {
	production.BatchDetail
	SupervisorIDs   []int64  `json:"supervisor_ids"`
	SupervisorNames []string `json:"supervisor_names"`
	WorkerIDs       []int64  `json:"worker_ids"`
	WorkerNames     []string `json:"worker_names"`
}

// BatchService manages the planning lifecycle of production batches. A batch
// never touches stock itself; output is posted through production logs and
// material is drawn through withdrawals that reference the batch.
type BatchService struct {
	db        *persistence.Database
	batchRepo *persistence.GormBatchRepository
	logger    *zap.Logger
}

// NewBatchService creates a new batch service
func NewBatchService(db *persistence.Database, batchRepo *persistence.GormBatchRepository, logger *zap.Logger) *BatchService {
	return &BatchService{db: db, batchRepo: batchRepo, logger: logger}
}

// newBatchNumber generates a batch number like PB-2026-0417
func newBatchNumber(now time.Time) string {
	return fmt.Sprintf("PB-%d-%04d", now.Year(), rand.IntN(9999)+1)
}

func buildAssignments(input BatchInput) ([]production.BatchAssignment, error) {
	assignments := make([]production.BatchAssignment, 0, len(input.SupervisorIDs)+len(input.WorkerIDs))
	for _, userID := range input.SupervisorIDs {
		a, err := production.NewBatchAssignment(0, userID, production.RoleSupervisorCrew)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	for _, userID := range input.WorkerIDs {
		a, err := production.NewBatchAssignment(0, userID, production.RoleWorkerCrew)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

// Create plans a new batch and assigns its crew in one transaction
func (s *BatchService) Create(ctx context.Context, input BatchInput) (*BatchView, error) {
	batch, err := production.NewBatch(newBatchNumber(time.Now()), input.ProductID, input.TargetQuantity, input.ScheduledDate, input.Notes)
	if err != nil {
		return nil, err
	}
	assignments, err := buildAssignments(input)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.batchRepo.WithTx(tx)
		if err := repo.Save(ctx, batch); err != nil {
			return err
		}
		return repo.ReplaceAssignments(ctx, batch.ID, assignments)
	})
	if err != nil {
		s.logger.Error("Failed to create batch",
			zap.Int64("product_id", input.ProductID),
			zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Batch created",
		zap.Int64("batch_id", batch.ID),
		zap.String("batch_number", batch.BatchNumber))
	return s.Get(ctx, batch.ID)
}

// Get returns one batch with its product and crew
func (s *BatchService) Get(ctx context.Context, id int64) (*BatchView, error) {
	detail, err := s.batchRepo.FindDetailedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	crew, err := s.batchRepo.FindCrew(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	view := newBatchView(*detail, crew)
	return &view, nil
}

// List returns a page of batches; ?status= narrows by lifecycle state
func (s *BatchService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BatchView], error) {
	details, err := s.batchRepo.FindAllDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.batchRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(details))
	for i, d := range details {
		ids[i] = d.ID
	}
	crew, err := s.batchRepo.FindCrew(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]BatchView, len(details))
	for i, d := range details {
		views[i] = newBatchView(d, crew)
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the plan of a live batch; a nil crew leaves assignments alone
func (s *BatchService) Update(ctx context.Context, id int64, input BatchInput, replaceCrew bool) (*BatchView, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := batch.UpdateDetails(input.ProductID, input.TargetQuantity, input.ScheduledDate, input.Notes); err != nil {
		return nil, err
	}

	var assignments []production.BatchAssignment
	if replaceCrew {
		if assignments, err = buildAssignments(input); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.batchRepo.WithTx(tx)
		if err := repo.Save(ctx, batch); err != nil {
			return err
		}
		if replaceCrew {
			return repo.ReplaceAssignments(ctx, batch.ID, assignments)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update batch", zap.Int64("batch_id", id), zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	return s.Get(ctx, id)
}

// SetStage moves a live batch to another processing stage
func (s *BatchService) SetStage(ctx context.Context, id int64, stage production.BatchStage) (*BatchView, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := batch.SetStage(stage); err != nil {
		return nil, err
	}
	if err := s.batchRepo.MarkStage(ctx, batch); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetStatus moves the batch along its lifecycle. The prior state read here
// guards the persistence write, so a stale transition loses the race.
func (s *BatchService) SetStatus(ctx context.Context, id int64, status production.BatchStatus) (*BatchView, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := batch.Status
	if err := batch.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.batchRepo.MarkStatus(ctx, batch, from); err != nil {
		return nil, err
	}

	s.logger.Info("Batch status changed",
		zap.Int64("batch_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	return s.Get(ctx, id)
}

// Delete removes a batch and its crew assignments
func (s *BatchService) Delete(ctx context.Context, id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.batchRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Batch deleted", zap.Int64("batch_id", id))
	return nil
}

func newBatchView(detail production.BatchDetail, crew []production.CrewMember) BatchView {
	view := BatchView{
		BatchDetail:     detail,
		SupervisorIDs:   []int64{},
		SupervisorNames: []string{},
		WorkerIDs:       []int64{},
		WorkerNames:     []string{},
	}
	for _, member := range crew {
		if member.BatchID != detail.ID {
			continue
		}
		switch member.RoleType {
		case production.RoleSupervisorCrew:
			view.SupervisorIDs = append(view.SupervisorIDs, member.UserID)
			view.SupervisorNames = append(view.SupervisorNames, member.UserName)
		case production.RoleWorkerCrew:
			view.WorkerIDs = append(view.WorkerIDs, member.UserID)
			view.WorkerNames = append(view.WorkerNames, member.UserName)
		}
	}
	return view
}
