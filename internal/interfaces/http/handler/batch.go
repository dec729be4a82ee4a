package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productionapp "github.com/tsaci/backend/internal/application/production"
	"github.com/tsaci/backend/internal/domain/production"
)

// BatchHandler handles production batch endpoints
type BatchHandler struct {
	BaseHandler
	batchService *productionapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *productionapp.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// BatchRequest represents a request to plan or re-plan a batch
type BatchRequest struct {
	ProductID      int64           `json:"product_id" binding:"required,min=1"`
	TargetQuantity decimal.Decimal `json:"target_quantity" binding:"required"`
	ScheduledDate  time.Time       `json:"scheduled_date" binding:"required"`
	Notes          string          `json:"notes"`
	SupervisorIDs  []int64         `json:"supervisor_ids"`
	WorkerIDs      []int64         `json:"worker_ids"`
}

func (r *BatchRequest) toInput() productionapp.BatchInput {
	return productionapp.BatchInput{
		ProductID:      r.ProductID,
		TargetQuantity: r.TargetQuantity,
		ScheduledDate:  r.ScheduledDate,
		Notes:          r.Notes,
		SupervisorIDs:  r.SupervisorIDs,
		WorkerIDs:      r.WorkerIDs,
	}
}

// SetStageRequest names the processing stage a batch moves to
type SetStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=mixing forming cooking packaging"`
}

// SetBatchStatusRequest names the lifecycle state a batch moves to
type SetBatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=planned in_progress completed cancelled"`
}

// Create plans a new batch with its crew
func (h *BatchHandler) Create(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.batchService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, view)
}

// List returns a page of batches; ?status= narrows by lifecycle state
func (h *BatchHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.batchService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one batch with its product and crew
func (h *BatchHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.batchService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Update re-plans a live batch. Sending supervisor_ids or worker_ids
// replaces the whole crew; omitting both leaves it alone.
func (h *BatchHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	replaceCrew := req.SupervisorIDs != nil || req.WorkerIDs != nil

	view, err := h.batchService.Update(c.Request.Context(), id, req.toInput(), replaceCrew)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// SetStage moves a batch to another processing stage
func (h *BatchHandler) SetStage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.batchService.SetStage(c.Request.Context(), id, production.BatchStage(req.Stage))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// SetStatus moves a batch along its lifecycle
func (h *BatchHandler) SetStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req SetBatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.batchService.SetStatus(c.Request.Context(), id, production.BatchStatus(req.Status))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a batch and its crew assignments
func (h *BatchHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
