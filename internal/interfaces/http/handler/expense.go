package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	financeapp "github.com/tsaci/backend/internal/application/finance"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents a request to create or update an expense
type ExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date"`
}

func (r ExpenseRequest) toInput() financeapp.ExpenseInput {
	input := financeapp.ExpenseInput{
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
	}
	if r.ExpenseDate != nil {
		input.ExpenseDate = *r.ExpenseDate
	}
	return input
}

// Create records an expense on behalf of the authenticated user
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication is required")
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req.toInput(), userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// List returns a page of expenses, optionally narrowed by category or date range
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if category := c.Query("category"); category != "" {
		expenses, err := h.expenseService.ByCategory(c.Request.Context(), category, filter)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, expenses)
		return
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, err := parseDateRange(c)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		expenses, err := h.expenseService.ByDateRange(c.Request.Context(), from, to, filter)
		if err != nil {
			h.DomainError(c, err)
			return
		}
		h.Success(c, expenses)
		return
	}

	page, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// Update changes an expense's attributes
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
