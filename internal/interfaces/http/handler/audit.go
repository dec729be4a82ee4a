package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	auditapp "github.com/tsaci/backend/internal/application/audit"
	"github.com/tsaci/backend/internal/domain/audit"
)

// AuditHandler exposes the audit trail to administrators
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// AuditListRequest represents the audit trail query filters
type AuditListRequest struct {
	UserID     *int64 `form:"user_id"`
	EntityType string `form:"entity_type"`
	Action     string `form:"action"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

func (r *AuditListRequest) bounds() (time.Time, time.Time) {
	var from, to time.Time
	if r.From != "" {
		from, _ = time.Parse("2006-01-02", r.From)
	}
	if r.To != "" {
		to, _ = time.Parse("2006-01-02", r.To)
		// inclusive upper bound
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to
}

// List returns audit entries matching the query filters, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var req AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to := req.bounds()

	entries, err := h.auditService.List(c.Request.Context(), audit.Filter{
		UserID:     req.UserID,
		EntityType: req.EntityType,
		Action:     audit.Action(req.Action),
		From:       from,
		To:         to,
		Limit:      req.Limit,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, entries)
}

// Stats returns trail totals; from/to bound the period, default all time
func (h *AuditHandler) Stats(c *gin.Context) {
	var req AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to := req.bounds()

	stats, err := h.auditService.Stats(c.Request.Context(), from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, stats)
}
