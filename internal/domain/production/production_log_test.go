package production

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionLog(t *testing.T) {
	t.Run("creates log with explicit date", func(t *testing.T) {
		date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		log, err := NewProductionLog(7, "B-2026-081", decimal.NewFromInt(500), "Main Warehouse", 3, date, "night shift")

		require.NoError(t, err)
		assert.Equal(t, int64(7), log.ProductID)
		assert.Equal(t, "B-2026-081", log.BatchNumber)
		assert.Equal(t, date, log.ProductionDate)
		assert.Equal(t, int64(3), log.SupervisorID)
	})

	t.Run("defaults production date to now", func(t *testing.T) {
		log, err := NewProductionLog(7, "B-1", decimal.NewFromInt(1), "", 3, time.Time{}, "")

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), log.ProductionDate, time.Second)
	})

	t.Run("requires batch number", func(t *testing.T) {
		_, err := NewProductionLog(7, "   ", decimal.NewFromInt(1), "", 3, time.Time{}, "")
		require.Error(t, err)
	})

	t.Run("requires positive quantity", func(t *testing.T) {
		_, err := NewProductionLog(7, "B-1", decimal.Zero, "", 3, time.Time{}, "")
		require.Error(t, err)

		_, err = NewProductionLog(7, "B-1", decimal.NewFromInt(-10), "", 3, time.Time{}, "")
		require.Error(t, err)
	})
}

func TestProductionLog_Update(t *testing.T) {
	t.Run("updates descriptive fields only", func(t *testing.T) {
		log, err := NewProductionLog(7, "B-1", decimal.NewFromInt(500), "", 3, time.Time{}, "")
		require.NoError(t, err)

		newDate := time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)
		require.NoError(t, log.Update("B-1-corrected", newDate, "corrected batch"))

		assert.Equal(t, "B-1-corrected", log.BatchNumber)
		assert.Equal(t, newDate, log.ProductionDate)
		assert.Equal(t, "corrected batch", log.Notes)
		assert.True(t, log.QuantityProduced.Equal(decimal.NewFromInt(500)))
	})

	t.Run("rejects empty batch number", func(t *testing.T) {
		log, err := NewProductionLog(7, "B-1", decimal.NewFromInt(500), "", 3, time.Time{}, "")
		require.NoError(t, err)

		require.Error(t, log.Update("", time.Time{}, ""))
	})
}
