package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/tsaci/backend/internal/application/report"
	"github.com/tsaci/backend/internal/domain/report"
)

// ReportHandler handles read-only aggregation endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the landing page summary
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Monthly returns the sales/expense summary for one month.
// Defaults to the current month when year/month are not given.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()

	if y, ok := queryInt(c, "year"); ok {
		year = y
	}
	if m, ok := queryInt(c, "month"); ok {
		if m < 1 || m > 12 {
			h.BadRequest(c, "month must be between 1 and 12")
			return
		}
		month = time.Month(m)
	}

	summary, err := h.reportService.Monthly(c.Request.Context(), year, month)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Production returns per-product production totals for a date window
func (h *ReportHandler) Production(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := report.ReportFilter{StartDate: from, EndDate: to}
	if productID, ok := queryInt(c, "product_id"); ok {
		id := int64(productID)
		filter.ProductID = &id
	}

	summaries, err := h.reportService.Production(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, summaries)
}
