package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/tsaci/backend/internal/application/inventory"
)

// InventoryHandler handles stock record endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateStockRecordRequest represents a request to seed a stock record
type CreateStockRecordRequest struct {
	ProductID        int64           `json:"product_id" binding:"required,min=1"`
	Location         string          `json:"location" binding:"max=200"`
	Quantity         decimal.Decimal `json:"quantity"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
}

// AdjustStockRequest represents a direct ledger adjustment
type AdjustStockRequest struct {
	ProductID int64           `json:"product_id" binding:"required,min=1"`
	Location  string          `json:"location" binding:"max=200"`
	Delta     decimal.Decimal `json:"delta" binding:"required"`
}

// SetThresholdRequest represents a request to change a low-stock threshold
type SetThresholdRequest struct {
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
}

// Create seeds a stock record with an opening balance
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateStockRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.Create(c.Request.Context(), inventoryapp.StockRecordInput{
		ProductID:        req.ProductID,
		Location:         req.Location,
		Quantity:         req.Quantity,
		MinimumThreshold: req.MinimumThreshold,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, record)
}

// List returns a page of stock records
func (h *InventoryHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one stock record
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

// ByProduct returns all stock records of one product
func (h *InventoryHandler) ByProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.inventoryService.ByProduct(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, records)
}

// LowStock returns records at or below their minimum threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	records, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, records)
}

// Adjust applies a signed quantity delta to the ledger
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.inventoryService.Adjust(c.Request.Context(), inventoryapp.AdjustStockInput{
		ProductID: req.ProductID,
		Location:  req.Location,
		Delta:     req.Delta,
	}); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

// SetThreshold changes a record's low-stock alert level
func (h *InventoryHandler) SetThreshold(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req SetThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.inventoryService.SetThreshold(c.Request.Context(), id, req.MinimumThreshold)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete removes a stock record
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
