package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/tsaci/backend/internal/domain/finance"
	"github.com/tsaci/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id int64) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	query := applyFilter(r.db.WithContext(ctx).Model(&finance.Expense{}), filter, "expense_date DESC")

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByCategory finds expenses in one category
func (r *GormExpenseRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	query := applyFilter(
		r.db.WithContext(ctx).Model(&finance.Expense{}).
			Where("category = ?", category),
		filter, "expense_date DESC",
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByDateRange finds expenses within [from, to]
func (r *GormExpenseRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	query := applyFilter(
		r.db.WithContext(ctx).Model(&finance.Expense{}).
			Where("expense_date >= ? AND expense_date <= ?", from, to),
		filter, "expense_date DESC",
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.Expense{}), filter, "")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
