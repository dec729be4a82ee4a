package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaci/backend/internal/domain/catalog"
	"github.com/tsaci/backend/internal/domain/finance"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/production"
	"github.com/tsaci/backend/internal/domain/report"
	"github.com/tsaci/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// seedReportData loads one product with a completed sale, an expense, a
// production run and a low stock record, all dated around `now`.
func seedReportData(t *testing.T, db *gorm.DB, now time.Time) *catalog.Product {
	t.Helper()
	ctx := context.Background()

	product, err := catalog.NewProduct("Calamansi Concentrate", "beverage", "L", decimal.NewFromInt(120))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(ctx, product))

	sale, err := trade.NewSale(product.ID, nil, decimal.NewFromInt(10), decimal.NewFromInt(120), "Main Warehouse", now, "")
	require.NoError(t, err)
	require.NoError(t, sale.Complete())
	require.NoError(t, NewGormSaleRepository(db).Save(ctx, sale))

	expense, err := finance.NewExpense("utilities", "electricity", decimal.NewFromInt(200), now, 1)
	require.NoError(t, err)
	require.NoError(t, NewGormExpenseRepository(db).Save(ctx, expense))

	log, err := production.NewProductionLog(product.ID, "B-1", decimal.NewFromInt(500), "Main Warehouse", 1, now, "")
	require.NoError(t, err)
	require.NoError(t, NewGormProductionLogRepository(db).Save(ctx, log))

	stock, err := inventory.NewStockRecord(product.ID, "Main Warehouse", decimal.NewFromInt(5), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, NewGormStockRecordRepository(db).Save(ctx, stock))

	return product
}

func TestGormOperationsReportRepository_GetDashboardSummary(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	product := seedReportData(t, db, now)
	repo := NewGormOperationsReportRepository(db)

	summary, err := repo.GetDashboardSummary(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TodayProductionRuns)
	assert.True(t, summary.MonthlySalesTotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.MonthlyExpenseTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.MonthlyNetIncome.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, summary.TopProductID)
	assert.Equal(t, product.ID, *summary.TopProductID)
	assert.Equal(t, "Calamansi Concentrate", summary.TopProductName)
	assert.Equal(t, int64(1), summary.LowStockCount)
	assert.Equal(t, int64(1), summary.ProductCount)
	assert.Equal(t, int64(0), summary.PendingWithdrawals)
}

func TestGormOperationsReportRepository_GetMonthlySummary(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	seedReportData(t, db, now)
	repo := NewGormOperationsReportRepository(db)

	summary, err := repo.GetMonthlySummary(context.Background(), 2026, time.August)

	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.SalesCount)
	assert.True(t, summary.SalesTotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.ExpenseTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.NetIncome.Equal(decimal.NewFromInt(1000)))

	empty, err := repo.GetMonthlySummary(context.Background(), 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.SalesCount)
	assert.True(t, empty.NetIncome.IsZero())
}

func TestGormOperationsReportRepository_GetProductionSummary(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	product := seedReportData(t, db, now)
	repo := NewGormOperationsReportRepository(db)

	summaries, err := repo.GetProductionSummary(context.Background(), report.ReportFilter{
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, product.ID, summaries[0].ProductID)
	assert.Equal(t, int64(1), summaries[0].RunCount)
	assert.True(t, summaries[0].TotalProduced.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "L", summaries[0].Unit)

	other := int64(9999)
	none, err := repo.GetProductionSummary(context.Background(), report.ReportFilter{ProductID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)
}
