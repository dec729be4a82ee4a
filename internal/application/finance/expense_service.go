package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/finance"
	"github.com/tsaci/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseInput contains the attributes for creating or updating an expense
type ExpenseInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
}

// ExpenseService handles expense bookkeeping
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, logger: logger}
}

// Create records an expense on behalf of recordedBy
func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput, recordedBy int64) (*finance.Expense, error) {
	expense, err := finance.NewExpense(input.Category, input.Description, input.Amount, input.ExpenseDate, recordedBy)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		s.logger.Error("Failed to save expense", zap.Error(err))
		return nil, shared.ErrStorageFailure
	}

	s.logger.Info("Expense recorded",
		zap.Int64("expense_id", expense.ID),
		zap.String("category", expense.Category),
		zap.String("amount", expense.Amount.String()))
	return expense, nil
}

// Get returns one expense by ID
func (s *ExpenseService) Get(ctx context.Context, id int64) (*finance.Expense, error) {
	return s.expenseRepo.FindByID(ctx, id)
}

// List returns a page of expenses
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[finance.Expense], error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(expenses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ByCategory returns expenses in one category
func (s *ExpenseService) ByCategory(ctx context.Context, category string, filter shared.Filter) ([]finance.Expense, error) {
	return s.expenseRepo.FindByCategory(ctx, category, filter)
}

// ByDateRange returns expenses whose expense date falls in [from, to]
func (s *ExpenseService) ByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]finance.Expense, error) {
	return s.expenseRepo.FindByDateRange(ctx, from, to, filter)
}

// Update changes an expense's attributes
func (s *ExpenseService) Update(ctx context.Context, id int64, input ExpenseInput) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expense.Update(input.Category, input.Description, input.Amount, input.ExpenseDate); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, shared.ErrStorageFailure
	}
	return expense, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted", zap.Int64("expense_id", id))
	return nil
}
