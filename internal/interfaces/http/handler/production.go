package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productionapp "github.com/tsaci/backend/internal/application/production"
)

// ProductionHandler handles production log endpoints
type ProductionHandler struct {
	BaseHandler
	productionService *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// CreateProductionLogRequest represents a request to record a production run.
// The supervisor is stamped from the authenticated user's claims.
type CreateProductionLogRequest struct {
	ProductID        int64           `json:"product_id" binding:"required,min=1"`
	BatchNumber      string          `json:"batch_number" binding:"required,min=1,max=100"`
	QuantityProduced decimal.Decimal `json:"quantity_produced" binding:"required"`
	OutputLocation   string          `json:"output_location" binding:"max=100"`
	ProductionDate   *time.Time      `json:"production_date"`
	Notes            string          `json:"notes"`
}

// UpdateProductionLogRequest represents the descriptive fields a run may change
type UpdateProductionLogRequest struct {
	BatchNumber    string     `json:"batch_number" binding:"required,min=1,max=100"`
	ProductionDate *time.Time `json:"production_date"`
	Notes          string     `json:"notes"`
}

// Create records a production run and credits its output to stock
func (h *ProductionHandler) Create(c *gin.Context) {
	var req CreateProductionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication is required")
		return
	}

	input := productionapp.CreateProductionLogInput{
		ProductID:        req.ProductID,
		BatchNumber:      req.BatchNumber,
		QuantityProduced: req.QuantityProduced,
		OutputLocation:   req.OutputLocation,
		SupervisorID:     userID,
		Notes:            req.Notes,
	}
	if req.ProductionDate != nil {
		input.ProductionDate = *req.ProductionDate
	}

	log, err := h.productionService.Create(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, log)
}

// List returns a page of production logs, optionally narrowed by date range
func (h *ProductionHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, err := parseDateRange(c)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		logs, err := h.productionService.ByDateRange(c.Request.Context(), from, to, filter)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, logs)
		return
	}

	page, err := h.productionService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one production log
func (h *ProductionHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	log, err := h.productionService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, log)
}

// ByProduct returns the production history of one product
func (h *ProductionHandler) ByProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	logs, err := h.productionService.ByProduct(c.Request.Context(), id, filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, logs)
}

// Update changes a run's descriptive fields
func (h *ProductionHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req UpdateProductionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := productionapp.UpdateProductionLogInput{
		BatchNumber: req.BatchNumber,
		Notes:       req.Notes,
	}
	if req.ProductionDate != nil {
		input.ProductionDate = *req.ProductionDate
	}

	log, err := h.productionService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, log)
}

// Delete removes a run and reverses its stock credit
func (h *ProductionHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.productionService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
