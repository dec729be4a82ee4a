package production

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannedBatch(t *testing.T) *Batch {
	t.Helper()
	b, err := NewBatch("PB-2026-0042", 3, decimal.NewFromInt(200), time.Now().Add(24*time.Hour), "morning run")
	require.NoError(t, err)
	return b
}

func TestNewBatch(t *testing.T) {
	t.Run("creates planned batch at first stage", func(t *testing.T) {
		scheduled := time.Now().Add(48 * time.Hour)
		b, err := NewBatch("PB-2026-0007", 5, decimal.NewFromInt(120), scheduled, "")

		require.NoError(t, err)
		assert.Equal(t, BatchPlanned, b.Status)
		assert.Equal(t, StageMixing, b.CurrentStage)
		assert.Equal(t, "PB-2026-0007", b.BatchNumber)
		assert.Equal(t, int64(5), b.ProductID)
		assert.False(t, b.IsTerminal())
	})

	t.Run("rejects blank batch number", func(t *testing.T) {
		_, err := NewBatch("   ", 5, decimal.NewFromInt(120), time.Now(), "")
		require.Error(t, err)
	})

	t.Run("rejects non-positive target quantity", func(t *testing.T) {
		_, err := NewBatch("PB-2026-0008", 5, decimal.Zero, time.Now(), "")
		require.Error(t, err)

		_, err = NewBatch("PB-2026-0008", 5, decimal.NewFromInt(-10), time.Now(), "")
		require.Error(t, err)
	})

	t.Run("rejects zero scheduled date", func(t *testing.T) {
		_, err := NewBatch("PB-2026-0009", 5, decimal.NewFromInt(120), time.Time{}, "")
		require.Error(t, err)
	})
}

func TestBatch_SetStatus(t *testing.T) {
	t.Run("planned batch can start or be cancelled", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchInProgress))
		assert.Equal(t, BatchInProgress, b.Status)

		b = newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchCancelled))
		assert.True(t, b.IsTerminal())
	})

	t.Run("planned batch cannot complete directly", func(t *testing.T) {
		b := newPlannedBatch(t)

		err := b.SetStatus(BatchCompleted)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
		assert.Equal(t, BatchPlanned, b.Status)
	})

	t.Run("running batch can complete or be cancelled", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchInProgress))
		require.NoError(t, b.SetStatus(BatchCompleted))
		assert.True(t, b.IsTerminal())
	})

	t.Run("terminal batch never changes status again", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchInProgress))
		require.NoError(t, b.SetStatus(BatchCompleted))

		err := b.SetStatus(BatchCancelled)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
		assert.Equal(t, BatchCompleted, b.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.Error(t, b.SetStatus("shipped"))
	})
}

func TestBatch_SetStage(t *testing.T) {
	t.Run("moves between stages while active", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchInProgress))

		require.NoError(t, b.SetStage(StageForming))
		require.NoError(t, b.SetStage(StageCooking))
		require.NoError(t, b.SetStage(StagePackaging))

		assert.Equal(t, StagePackaging, b.CurrentStage)
	})

	t.Run("rejects unknown stage", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.Error(t, b.SetStage("fermenting"))
	})

	t.Run("fails on terminal batch", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchCancelled))

		err := b.SetStage(StageForming)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
		assert.Equal(t, StageMixing, b.CurrentStage)
	})
}

func TestBatch_UpdateDetails(t *testing.T) {
	t.Run("updates plan of active batch", func(t *testing.T) {
		b := newPlannedBatch(t)
		rescheduled := time.Now().Add(72 * time.Hour)

		require.NoError(t, b.UpdateDetails(7, decimal.NewFromInt(350), rescheduled, "doubled order"))

		assert.Equal(t, int64(7), b.ProductID)
		assert.True(t, b.TargetQuantity.Equal(decimal.NewFromInt(350)))
		assert.Equal(t, rescheduled, b.ScheduledDate)
		assert.Equal(t, "doubled order", b.Notes)
	})

	t.Run("keeps schedule when zero date given", func(t *testing.T) {
		b := newPlannedBatch(t)
		original := b.ScheduledDate

		require.NoError(t, b.UpdateDetails(7, decimal.NewFromInt(350), time.Time{}, ""))

		assert.Equal(t, original, b.ScheduledDate)
	})

	t.Run("fails on terminal batch", func(t *testing.T) {
		b := newPlannedBatch(t)
		require.NoError(t, b.SetStatus(BatchCancelled))

		err := b.UpdateDetails(7, decimal.NewFromInt(350), time.Now(), "")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})
}

func TestNewBatchAssignment(t *testing.T) {
	t.Run("links user in crew role", func(t *testing.T) {
		a, err := NewBatchAssignment(4, 11, RoleSupervisorCrew)

		require.NoError(t, err)
		assert.Equal(t, int64(4), a.BatchID)
		assert.Equal(t, int64(11), a.UserID)
		assert.Equal(t, RoleSupervisorCrew, a.RoleType)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewBatchAssignment(4, 11, "foreman")
		require.Error(t, err)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewBatchAssignment(4, 0, RoleWorkerCrew)
		require.Error(t, err)
	})
}
