package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tsaci/backend/internal/domain/inventory"
	"github.com/tsaci/backend/internal/domain/report"
	"github.com/tsaci/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOperationsReportRepository implements OperationsReportRepository using
// GORM. Reports aggregate the write-side tables directly.
type GormOperationsReportRepository struct {
	db *gorm.DB
}

// NewGormOperationsReportRepository creates a new GormOperationsReportRepository
func NewGormOperationsReportRepository(db *gorm.DB) *GormOperationsReportRepository {
	return &GormOperationsReportRepository{db: db}
}

// GetDashboardSummary returns the dashboard read model for now
func (r *GormOperationsReportRepository) GetDashboardSummary(ctx context.Context, now time.Time) (*report.DashboardSummary, error) {
	db := r.db.WithContext(ctx)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary := &report.DashboardSummary{Date: now}

	if err := db.Table("production_logs").
		Where("production_date >= ? AND production_date < ?", dayStart, dayEnd).
		Count(&summary.TodayProductionRuns).Error; err != nil {
		return nil, err
	}

	if err := db.Table("sales").
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("status = ?", trade.SaleCompleted).
		Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
		Scan(&summary.MonthlySalesTotal).Error; err != nil {
		return nil, err
	}

	if err := db.Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date >= ? AND expense_date < ?", monthStart, monthEnd).
		Scan(&summary.MonthlyExpenseTotal).Error; err != nil {
		return nil, err
	}

	summary.MonthlyNetIncome = summary.MonthlySalesTotal.Sub(summary.MonthlyExpenseTotal)

	var top struct {
		ProductID int64
		Name      string
	}
	err := db.Table("sales s").
		Select("s.product_id, p.name").
		Joins("JOIN products p ON p.id = s.product_id").
		Where("s.status = ?", trade.SaleCompleted).
		Where("s.sale_date >= ? AND s.sale_date < ?", monthStart, monthEnd).
		Group("s.product_id, p.name").
		Order("SUM(s.quantity * s.unit_price) DESC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if top.ProductID != 0 {
		summary.TopProductID = &top.ProductID
		summary.TopProductName = top.Name
	}

	if err := db.Table("stock_records").
		Where("quantity <= minimum_threshold").
		Count(&summary.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := db.Table("products").Count(&summary.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := db.Table("customers").Count(&summary.CustomerCount).Error; err != nil {
		return nil, err
	}
	if err := db.Table("material_withdrawals").
		Where("status = ?", inventory.WithdrawalPending).
		Count(&summary.PendingWithdrawals).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// GetMonthlySummary returns the sales/expense aggregate for one month
func (r *GormOperationsReportRepository) GetMonthlySummary(ctx context.Context, year int, month time.Month) (*report.MonthlySummary, error) {
	db := r.db.WithContext(ctx)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary := &report.MonthlySummary{Year: year, Month: month}

	if err := db.Table("sales").
		Where("status = ?", trade.SaleCompleted).
		Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
		Count(&summary.SalesCount).Error; err != nil {
		return nil, err
	}

	if err := db.Table("sales").
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("status = ?", trade.SaleCompleted).
		Where("sale_date >= ? AND sale_date < ?", monthStart, monthEnd).
		Scan(&summary.SalesTotal).Error; err != nil {
		return nil, err
	}

	if err := db.Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Where("expense_date >= ? AND expense_date < ?", monthStart, monthEnd).
		Scan(&summary.ExpenseTotal).Error; err != nil {
		return nil, err
	}

	summary.NetIncome = summary.SalesTotal.Sub(summary.ExpenseTotal)
	return summary, nil
}

// GetProductionSummary returns per-product output over the filter period
func (r *GormOperationsReportRepository) GetProductionSummary(ctx context.Context, filter report.ReportFilter) ([]report.ProductionSummary, error) {
	type row struct {
		ProductID     int64
		ProductName   string
		RunCount      int64
		TotalProduced decimal.Decimal
		Unit          string
	}

	query := r.db.WithContext(ctx).Table("production_logs pl").
		Select("pl.product_id, p.name AS product_name, COUNT(*) AS run_count, COALESCE(SUM(pl.quantity_produced), 0) AS total_produced, p.unit").
		Joins("JOIN products p ON p.id = pl.product_id").
		Group("pl.product_id, p.name, p.unit").
		Order("total_produced DESC")

	if !filter.StartDate.IsZero() {
		query = query.Where("pl.production_date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("pl.production_date <= ?", filter.EndDate)
	}
	if filter.ProductID != nil {
		query = query.Where("pl.product_id = ?", *filter.ProductID)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]report.ProductionSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, report.ProductionSummary{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			RunCount:      r.RunCount,
			TotalProduced: r.TotalProduced,
			Unit:          r.Unit,
		})
	}
	return summaries, nil
}
