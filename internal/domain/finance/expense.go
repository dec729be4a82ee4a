package finance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/shared"
)

// Expense is a single operating cost entry recorded against a category
type Expense struct {
	shared.BaseEntity
	Category    string          `gorm:"size:100;not null;index"`
	Description string          `gorm:"size:500;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpenseDate time.Time       `gorm:"not null;index"`
	RecordedBy  int64           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates an expense entry
func NewExpense(category, description string, amount decimal.Decimal, expenseDate time.Time, recordedBy int64) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Description: description,
		Amount:      amount,
		ExpenseDate: expenseDate,
		RecordedBy:  recordedBy,
	}, nil
}

// Update applies new attribute values to the expense
func (e *Expense) Update(category, description string, amount decimal.Decimal, expenseDate time.Time) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Category = category
	e.Description = description
	e.Amount = amount
	if !expenseDate.IsZero() {
		e.ExpenseDate = expenseDate
	}
	e.Touch()
	return nil
}
