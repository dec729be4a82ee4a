package trade

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/domain/trade"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type salesFixture struct {
	svc       *SalesService
	stockRepo *persistence.GormStockRecordRepository
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&trade.Sale{}, &inventory.StockRecord{}))

	stockRepo := persistence.NewGormStockRecordRepository(db)
	record, err := inventory.NewStockRecord(1, "Main Warehouse", decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, stockRepo.Save(context.Background(), record))

	svc := NewSalesService(
		&persistence.Database{DB: db},
		persistence.NewGormSaleRepository(db),
		stockRepo,
		zap.NewNop(),
	)
	return &salesFixture{svc: svc, stockRepo: stockRepo}
}

func (f *salesFixture) quantity(t *testing.T) decimal.Decimal {
	t.Helper()
	record, err := f.stockRepo.FindByKey(context.Background(), 1, "Main Warehouse")
	require.NoError(t, err)
	return record.Quantity
}

func (f *salesFixture) pendingSale(t *testing.T, qty int64) *trade.Sale {
	t.Helper()
	sale, err := f.svc.Create(context.Background(), CreateSaleInput{
		ProductID: 1,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(10),
		Location:  "Main Warehouse",
	})
	require.NoError(t, err)
	return sale
}

func TestSalesService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("pending sale does not touch stock", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 20)

		assert.Equal(t, trade.SalePending, sale.Status)
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(100)))
	})

	t.Run("immediate completion records and deducts together", func(t *testing.T) {
		f := newSalesFixture(t)

		sale, err := f.svc.Create(ctx, CreateSaleInput{
			ProductID: 1,
			Quantity:  decimal.NewFromInt(20),
			UnitPrice: decimal.NewFromInt(10),
			Location:  "Main Warehouse",
			Complete:  true,
		})
		require.NoError(t, err)

		assert.Equal(t, trade.SaleCompleted, sale.Status)
		assert.NotNil(t, sale.CompletedAt)
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(80)))
	})

	t.Run("completing against an unknown location fails and saves nothing", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.Create(ctx, CreateSaleInput{
			ProductID: 1,
			Quantity:  decimal.NewFromInt(20),
			UnitPrice: decimal.NewFromInt(10),
			Location:  "Nowhere",
			Complete:  true,
		})
		assert.ErrorIs(t, err, inventory.ErrNoSuchStockRecord)

		page, err := f.svc.List(ctx, shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
	})
}

func TestSalesService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts the sold quantity exactly once", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 30)

		completed, err := f.svc.Complete(ctx, sale.ID)
		require.NoError(t, err)

		assert.Equal(t, trade.SaleCompleted, completed.Status)
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(70)))
	})

	t.Run("second completion fails without a second deduction", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 30)

		_, err := f.svc.Complete(ctx, sale.ID)
		require.NoError(t, err)

		_, err = f.svc.Complete(ctx, sale.ID)
		assert.ErrorIs(t, err, trade.ErrInvalidStateTransition)
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(70)))
	})

	t.Run("completing a cancelled sale fails", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 30)

		_, err := f.svc.Cancel(ctx, sale.ID)
		require.NoError(t, err)

		_, err = f.svc.Complete(ctx, sale.ID)
		assert.ErrorIs(t, err, trade.ErrInvalidStateTransition)
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(100)))
	})

	t.Run("ledger failure rolls back the completion", func(t *testing.T) {
		f := newSalesFixture(t)

		sale, err := f.svc.Create(ctx, CreateSaleInput{
			ProductID: 1,
			Quantity:  decimal.NewFromInt(5),
			UnitPrice: decimal.NewFromInt(10),
			Location:  "Nowhere",
		})
		require.NoError(t, err)

		_, err = f.svc.Complete(ctx, sale.ID)
		assert.ErrorIs(t, err, inventory.ErrNoSuchStockRecord)

		stored, err := f.svc.Get(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.SalePending, stored.Status)
	})
}

func TestSalesService_Update(t *testing.T) {
	ctx := context.Background()
	f := newSalesFixture(t)
	sale := f.pendingSale(t, 10)

	updated, err := f.svc.Update(ctx, sale.ID, UpdateSaleInput{
		Quantity:  decimal.NewFromInt(12),
		UnitPrice: decimal.NewFromInt(11),
		SaleDate:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Notes:     "renegotiated",
	})
	require.NoError(t, err)
	assert.True(t, updated.Total().Equal(decimal.NewFromInt(132)))

	_, err = f.svc.Complete(ctx, sale.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, sale.ID, UpdateSaleInput{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, trade.ErrInvalidStateTransition)
}

func TestSalesService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a completed sale restocks the quantity", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 25)

		_, err := f.svc.Complete(ctx, sale.ID)
		require.NoError(t, err)
		require.True(t, f.quantity(t).Equal(decimal.NewFromInt(75)))

		require.NoError(t, f.svc.Delete(ctx, sale.ID))
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(100)))
	})

	t.Run("deleting a pending sale leaves stock untouched", func(t *testing.T) {
		f := newSalesFixture(t)
		sale := f.pendingSale(t, 25)

		require.NoError(t, f.svc.Delete(ctx, sale.ID))
		assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(100)))
	})
}
