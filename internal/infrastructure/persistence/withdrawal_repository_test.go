package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
)

func savedPendingWithdrawal(t *testing.T, repo *GormWithdrawalRepository) *inventory.Withdrawal {
	t.Helper()
	w, err := inventory.NewWithdrawal(1, decimal.NewFromInt(25), 11, nil, "mixing")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), w))
	require.NotZero(t, w.ID)
	return w
}

func TestGormWithdrawalRepository_MarkApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("persists approval of pending withdrawal", func(t *testing.T) {
		repo := NewGormWithdrawalRepository(newTestDB(t))
		w := savedPendingWithdrawal(t, repo)

		require.NoError(t, w.Approve(9))
		require.NoError(t, repo.MarkApproved(ctx, w))

		stored, err := repo.FindByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, inventory.WithdrawalApproved, stored.Status)
		assert.Equal(t, int64(9), *stored.ApprovedBy)
		assert.NotNil(t, stored.ApprovedAt)
	})

	t.Run("second transition loses the guard race", func(t *testing.T) {
		repo := NewGormWithdrawalRepository(newTestDB(t))
		w := savedPendingWithdrawal(t, repo)

		require.NoError(t, w.Approve(9))
		require.NoError(t, repo.MarkApproved(ctx, w))

		// A stale copy still in pending state tries the same transition
		stale, err := inventory.NewWithdrawal(1, decimal.NewFromInt(25), 11, nil, "mixing")
		require.NoError(t, err)
		stale.ID = w.ID
		require.NoError(t, stale.Approve(10))

		err = repo.MarkApproved(ctx, stale)

		assert.ErrorIs(t, err, inventory.ErrInvalidStateTransition)

		stored, err := repo.FindByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9), *stored.ApprovedBy, "first approver must win")
	})

	t.Run("missing withdrawal returns not found", func(t *testing.T) {
		repo := NewGormWithdrawalRepository(newTestDB(t))

		w, err := inventory.NewWithdrawal(1, decimal.NewFromInt(25), 11, nil, "")
		require.NoError(t, err)
		w.ID = 424242
		require.NoError(t, w.Approve(9))

		assert.ErrorIs(t, repo.MarkApproved(ctx, w), shared.ErrNotFound)
	})
}

func TestGormWithdrawalRepository_MarkRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("persists rejection with reason", func(t *testing.T) {
		repo := NewGormWithdrawalRepository(newTestDB(t))
		w := savedPendingWithdrawal(t, repo)

		require.NoError(t, w.Reject(9, "not needed"))
		require.NoError(t, repo.MarkRejected(ctx, w))

		stored, err := repo.FindByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, inventory.WithdrawalRejected, stored.Status)
		assert.Equal(t, "not needed", stored.RejectionReason)
	})

	t.Run("rejection after approval fails", func(t *testing.T) {
		repo := NewGormWithdrawalRepository(newTestDB(t))
		w := savedPendingWithdrawal(t, repo)

		require.NoError(t, w.Approve(9))
		require.NoError(t, repo.MarkApproved(ctx, w))

		stale, err := inventory.NewWithdrawal(1, decimal.NewFromInt(25), 11, nil, "")
		require.NoError(t, err)
		stale.ID = w.ID
		require.NoError(t, stale.Reject(10, "duplicate"))

		assert.ErrorIs(t, repo.MarkRejected(ctx, stale), inventory.ErrInvalidStateTransition)
	})
}

func TestGormWithdrawalRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormWithdrawalRepository(newTestDB(t))

	first := savedPendingWithdrawal(t, repo)
	second := savedPendingWithdrawal(t, repo)
	require.NoError(t, second.Approve(9))
	require.NoError(t, repo.MarkApproved(ctx, second))

	t.Run("lists all withdrawals", func(t *testing.T) {
		all, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.Filter{Filters: map[string]interface{}{"status": inventory.WithdrawalPending}}

		pending, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, first.ID, pending[0].ID)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
