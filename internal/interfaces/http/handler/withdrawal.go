package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/tsaci/backend/internal/application/inventory"
)

// WithdrawalHandler handles material withdrawal endpoints
type WithdrawalHandler struct {
	BaseHandler
	withdrawalService *inventoryapp.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler
func NewWithdrawalHandler(withdrawalService *inventoryapp.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// CreateWithdrawalRequest represents a request to withdraw material
type CreateWithdrawalRequest struct {
	StockRecordID int64           `json:"stock_record_id" binding:"required,min=1"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	BatchID       *int64          `json:"batch_id"`
	Purpose       string          `json:"purpose" binding:"max=500"`
}

// RejectWithdrawalRequest represents a rejection with its reason
type RejectWithdrawalRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Create registers a pending withdrawal on behalf of the authenticated user
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication is required")
		return
	}

	view, err := h.withdrawalService.Create(c.Request.Context(), inventoryapp.CreateWithdrawalInput{
		StockRecordID: req.StockRecordID,
		Quantity:      req.Quantity,
		RequestedBy:   userID,
		BatchID:       req.BatchID,
		Purpose:       req.Purpose,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, view)
}

// List returns a page of withdrawals; ?status= narrows by lifecycle state
func (h *WithdrawalHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.withdrawalService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one withdrawal
func (h *WithdrawalHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.withdrawalService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Approve approves a pending withdrawal and deducts the stock
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication is required")
		return
	}

	view, err := h.withdrawalService.Approve(c.Request.Context(), id, userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}

// Reject rejects a pending withdrawal
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication is required")
		return
	}

	view, err := h.withdrawalService.Reject(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, view)
}
