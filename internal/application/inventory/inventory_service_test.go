package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newInventoryService(t *testing.T) *InventoryService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&inventory.StockRecord{}))

	return NewInventoryService(persistence.NewGormStockRecordRepository(db), zap.NewNop())
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates record with opening balance", func(t *testing.T) {
		svc := newInventoryService(t)

		record, err := svc.Create(ctx, StockRecordInput{
			ProductID:        1,
			Location:         "Cold Storage",
			Quantity:         decimal.NewFromInt(50),
			MinimumThreshold: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.True(t, record.Quantity.Equal(decimal.NewFromInt(50)))
	})

	t.Run("duplicate product-location pair is rejected", func(t *testing.T) {
		svc := newInventoryService(t)

		_, err := svc.Create(ctx, StockRecordInput{ProductID: 1, Location: "Cold Storage"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, StockRecordInput{ProductID: 1, Location: "Cold Storage"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestInventoryService_Adjust(t *testing.T) {
	ctx := context.Background()

	t.Run("positive delta creates the record on first touch", func(t *testing.T) {
		svc := newInventoryService(t)

		require.NoError(t, svc.Adjust(ctx, AdjustStockInput{
			ProductID: 2,
			Location:  "Main Warehouse",
			Delta:     decimal.NewFromInt(15),
		}))

		records, err := svc.ByProduct(ctx, 2)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Quantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("negative delta against a missing record fails", func(t *testing.T) {
		svc := newInventoryService(t)

		err := svc.Adjust(ctx, AdjustStockInput{
			ProductID: 3,
			Location:  "Main Warehouse",
			Delta:     decimal.NewFromInt(-5),
		})
		assert.ErrorIs(t, err, inventory.ErrNoSuchStockRecord)
	})

	t.Run("zero delta is rejected", func(t *testing.T) {
		svc := newInventoryService(t)

		err := svc.Adjust(ctx, AdjustStockInput{ProductID: 2, Delta: decimal.Zero})
		assert.Error(t, err)
	})
}

func TestInventoryService_SetThreshold(t *testing.T) {
	ctx := context.Background()
	svc := newInventoryService(t)

	record, err := svc.Create(ctx, StockRecordInput{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	updated, err := svc.SetThreshold(ctx, record.ID, decimal.NewFromInt(8))
	require.NoError(t, err)
	assert.True(t, updated.IsLowStock())

	low, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, record.ID, low[0].ID)
}
