package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingWithdrawal(t *testing.T) *Withdrawal {
	t.Helper()
	w, err := NewWithdrawal(3, decimal.NewFromInt(25), 11, nil, "batch 42 mixing")
	require.NoError(t, err)
	return w
}

func TestNewWithdrawal(t *testing.T) {
	t.Run("creates pending withdrawal", func(t *testing.T) {
		batchID := int64(42)
		w, err := NewWithdrawal(3, decimal.NewFromInt(25), 11, &batchID, "mixing")

		require.NoError(t, err)
		assert.Equal(t, WithdrawalPending, w.Status)
		assert.Equal(t, int64(3), w.StockRecordID)
		assert.Equal(t, int64(11), w.RequestedBy)
		assert.Equal(t, int64(42), *w.BatchID)
		assert.False(t, w.RequestedAt.IsZero())
		assert.Nil(t, w.ApprovedBy)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewWithdrawal(3, decimal.Zero, 11, nil, "")
		require.Error(t, err)

		_, err = NewWithdrawal(3, decimal.NewFromInt(-5), 11, nil, "")
		require.Error(t, err)
	})
}

func TestWithdrawal_Approve(t *testing.T) {
	t.Run("approves pending withdrawal", func(t *testing.T) {
		w := newPendingWithdrawal(t)

		require.NoError(t, w.Approve(9))

		assert.Equal(t, WithdrawalApproved, w.Status)
		assert.Equal(t, int64(9), *w.ApprovedBy)
		assert.NotNil(t, w.ApprovedAt)
		assert.True(t, w.IsTerminal())
	})

	t.Run("fails on already approved withdrawal", func(t *testing.T) {
		w := newPendingWithdrawal(t)
		require.NoError(t, w.Approve(9))

		err := w.Approve(10)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
		assert.Equal(t, int64(9), *w.ApprovedBy, "original approver must be preserved")
	})

	t.Run("fails on rejected withdrawal", func(t *testing.T) {
		w := newPendingWithdrawal(t)
		require.NoError(t, w.Reject(9, "not needed"))

		err := w.Approve(10)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})
}

func TestWithdrawal_Reject(t *testing.T) {
	t.Run("rejects pending withdrawal with reason", func(t *testing.T) {
		w := newPendingWithdrawal(t)

		require.NoError(t, w.Reject(9, "insufficient justification"))

		assert.Equal(t, WithdrawalRejected, w.Status)
		assert.Equal(t, "insufficient justification", w.RejectionReason)
		assert.True(t, w.IsTerminal())
	})

	t.Run("fails on terminal withdrawal", func(t *testing.T) {
		w := newPendingWithdrawal(t)
		require.NoError(t, w.Reject(9, "dup"))

		err := w.Reject(10, "again")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})
}
