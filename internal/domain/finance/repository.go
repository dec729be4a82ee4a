package finance

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/shared"
)

// ExpenseRepository defines the persistence interface for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id int64) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Expense, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Expense, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id int64) error
}
