package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingSale(t *testing.T) *Sale {
	t.Helper()
	s, err := NewSale(7, nil, decimal.NewFromInt(10), decimal.NewFromFloat(12.50), "Main Warehouse", time.Time{}, "")
	require.NoError(t, err)
	return s
}

func TestNewSale(t *testing.T) {
	t.Run("creates pending sale", func(t *testing.T) {
		customerID := int64(4)
		s, err := NewSale(7, &customerID, decimal.NewFromInt(10), decimal.NewFromFloat(12.50), "Main Warehouse", time.Time{}, "rush order")

		require.NoError(t, err)
		assert.Equal(t, SalePending, s.Status)
		assert.Equal(t, int64(4), *s.CustomerID)
		assert.WithinDuration(t, time.Now(), s.SaleDate, time.Second)
		assert.Nil(t, s.CompletedAt)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewSale(7, nil, decimal.Zero, decimal.NewFromInt(1), "", time.Time{}, "")
		require.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := NewSale(7, nil, decimal.NewFromInt(1), decimal.NewFromInt(-1), "", time.Time{}, "")
		require.Error(t, err)
	})
}

func TestSale_Total(t *testing.T) {
	s := newPendingSale(t)
	assert.True(t, s.Total().Equal(decimal.NewFromInt(125)))
}

func TestSale_Complete(t *testing.T) {
	t.Run("completes pending sale", func(t *testing.T) {
		s := newPendingSale(t)

		require.NoError(t, s.Complete())

		assert.Equal(t, SaleCompleted, s.Status)
		assert.NotNil(t, s.CompletedAt)
		assert.True(t, s.IsTerminal())
	})

	t.Run("fails on completed sale", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Complete())
		first := *s.CompletedAt

		err := s.Complete()

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
		assert.Equal(t, first, *s.CompletedAt)
	})

	t.Run("fails on cancelled sale", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Cancel())

		err := s.Complete()

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})
}

func TestSale_Cancel(t *testing.T) {
	t.Run("cancels pending sale", func(t *testing.T) {
		s := newPendingSale(t)

		require.NoError(t, s.Cancel())

		assert.Equal(t, SaleCancelled, s.Status)
		assert.True(t, s.IsTerminal())
	})

	t.Run("fails on terminal sale", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Complete())

		require.Error(t, s.Cancel())
	})
}

func TestSale_UpdateDetails(t *testing.T) {
	t.Run("updates pending sale", func(t *testing.T) {
		s := newPendingSale(t)
		date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

		require.NoError(t, s.UpdateDetails(decimal.NewFromInt(20), decimal.NewFromInt(11), date, "revised"))

		assert.True(t, s.Quantity.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, date, s.SaleDate)
	})

	t.Run("rejects update on terminal sale", func(t *testing.T) {
		s := newPendingSale(t)
		require.NoError(t, s.Complete())

		err := s.UpdateDetails(decimal.NewFromInt(20), decimal.NewFromInt(11), time.Time{}, "")

		assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	})
}
