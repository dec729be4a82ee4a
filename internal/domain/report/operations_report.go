package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is a read model for the landing dashboard.
// Monetary figures cover the current calendar month.
type DashboardSummary struct {
	Date                time.Time       `json:"date"`
	TodayProductionRuns int64           `json:"today_production_runs"`
	MonthlySalesTotal   decimal.Decimal `json:"monthly_sales_total"`
	MonthlyExpenseTotal decimal.Decimal `json:"monthly_expense_total"`
	MonthlyNetIncome    decimal.Decimal `json:"monthly_net_income"`
	TopProductID        *int64          `json:"top_product_id,omitempty"`
	TopProductName      string          `json:"top_product_name,omitempty"`
	LowStockCount       int64           `json:"low_stock_count"`
	ProductCount        int64           `json:"product_count"`
	CustomerCount       int64           `json:"customer_count"`
	PendingWithdrawals  int64           `json:"pending_withdrawals"`
}

// MonthlySummary aggregates sales and expenses for one calendar month
type MonthlySummary struct {
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	SalesCount   int64           `json:"sales_count"`
	SalesTotal   decimal.Decimal `json:"sales_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetIncome    decimal.Decimal `json:"net_income"`
}

// ProductionSummary aggregates production output per product over a period
type ProductionSummary struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	RunCount      int64           `json:"run_count"`
	TotalProduced decimal.Decimal `json:"total_produced"`
	Unit          string          `json:"unit"`
}

// ReportFilter bounds the period covered by a report query
type ReportFilter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ProductID *int64    `json:"product_id,omitempty"`
}

// OperationsReportRepository defines the interface for aggregation queries.
// Implementations query the write-side tables directly; there is no separate
// read store.
type OperationsReportRepository interface {
	// GetDashboardSummary returns the dashboard read model for now
	GetDashboardSummary(ctx context.Context, now time.Time) (*DashboardSummary, error)

	// GetMonthlySummary returns the sales/expense aggregate for one month
	GetMonthlySummary(ctx context.Context, year int, month time.Month) (*MonthlySummary, error)

	// GetProductionSummary returns per-product output over the filter period
	GetProductionSummary(ctx context.Context, filter ReportFilter) ([]ProductionSummary, error)
}
