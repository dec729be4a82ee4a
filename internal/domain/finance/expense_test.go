package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	t.Run("creates expense", func(t *testing.T) {
		date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		e, err := NewExpense("utilities", "August electricity", decimal.NewFromFloat(1845.20), date, 5)

		require.NoError(t, err)
		assert.Equal(t, "utilities", e.Category)
		assert.Equal(t, date, e.ExpenseDate)
		assert.Equal(t, int64(5), e.RecordedBy)
	})

	t.Run("defaults expense date to now", func(t *testing.T) {
		e, err := NewExpense("supplies", "gloves", decimal.NewFromInt(50), time.Time{}, 5)

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), e.ExpenseDate, time.Second)
	})

	t.Run("requires category and description", func(t *testing.T) {
		_, err := NewExpense("", "desc", decimal.NewFromInt(1), time.Time{}, 5)
		require.Error(t, err)

		_, err = NewExpense("cat", "  ", decimal.NewFromInt(1), time.Time{}, 5)
		require.Error(t, err)
	})

	t.Run("requires positive amount", func(t *testing.T) {
		_, err := NewExpense("cat", "desc", decimal.Zero, time.Time{}, 5)
		require.Error(t, err)
	})
}

func TestExpense_Update(t *testing.T) {
	e, err := NewExpense("utilities", "electricity", decimal.NewFromInt(100), time.Time{}, 5)
	require.NoError(t, err)

	t.Run("updates fields", func(t *testing.T) {
		date := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
		require.NoError(t, e.Update("maintenance", "pump repair", decimal.NewFromInt(300), date))

		assert.Equal(t, "maintenance", e.Category)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, date, e.ExpenseDate)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		require.Error(t, e.Update("maintenance", "pump repair", decimal.NewFromInt(-1), time.Time{}))
	})
}
