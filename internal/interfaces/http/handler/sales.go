package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	tradeapp "github.com/tsaci/backend/internal/application/trade"
)

// SalesHandler handles sales endpoints
type SalesHandler struct {
	BaseHandler
	salesService *tradeapp.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *tradeapp.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	ProductID  int64           `json:"product_id" binding:"required,min=1"`
	CustomerID *int64          `json:"customer_id"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Location   string          `json:"location" binding:"max=200"`
	SaleDate   *time.Time      `json:"sale_date"`
	Notes      string          `json:"notes"`
	Status     string          `json:"status" binding:"omitempty,oneof=pending completed"`
}

// UpdateSaleRequest represents the terms a pending sale may change
type UpdateSaleRequest struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	SaleDate  *time.Time      `json:"sale_date"`
	Notes     string          `json:"notes"`
}

// Create records a sale, optionally completing it immediately
func (h *SalesHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := tradeapp.CreateSaleInput{
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Location:   req.Location,
		Notes:      req.Notes,
		Complete:   req.Status == "completed",
	}
	if req.SaleDate != nil {
		input.SaleDate = *req.SaleDate
	}

	sale, err := h.salesService.Create(c.Request.Context(), input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, sale)
}

// List returns a page of sales, optionally narrowed by date range or status
func (h *SalesHandler) List(c *gin.Context) {
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
		sales, err := h.salesService.ByDateRange(c.Request.Context(), from, to, filter)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, sales)
		return
	}

	page, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one sale
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}

// Complete fulfills a pending sale and deducts the stock
func (h *SalesHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.Complete(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel cancels a pending sale
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.salesService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update changes a pending sale's terms
func (h *SalesHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := tradeapp.UpdateSaleInput{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Notes:     req.Notes,
	}
	if req.SaleDate != nil {
		input.SaleDate = *req.SaleDate
	}

	sale, err := h.salesService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes a sale, restocking a completed one
func (h *SalesHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.salesService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
