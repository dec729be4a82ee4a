package report

import (
	"context"
	"time"

	"github.com/tsaci/backend/internal/domain/report"
	"go.uber.org/zap"
)

// ReportService exposes the aggregated operational views
type ReportService struct {
	reportRepo report.OperationsReportRepository
	logger     *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(reportRepo report.OperationsReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

// Dashboard returns the summary for the dashboard landing page
func (s *ReportService) Dashboard(ctx context.Context) (*report.DashboardSummary, error) {
	summary, err := s.reportRepo.GetDashboardSummary(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to build dashboard summary", zap.Error(err))
		return nil, err
	}
	return summary, nil
}

// Monthly returns the sales/expense summary for one calendar month
func (s *ReportService) Monthly(ctx context.Context, year int, month time.Month) (*report.MonthlySummary, error) {
	return s.reportRepo.GetMonthlySummary(ctx, year, month)
}

// Production returns per-product production totals for the filter window
func (s *ReportService) Production(ctx context.Context, filter report.ReportFilter) ([]report.ProductionSummary, error) {
	return s.reportRepo.GetProductionSummary(ctx, filter)
}
