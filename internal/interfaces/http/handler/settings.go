package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/tsaci/backend/internal/application/settings"
	"github.com/tsaci/backend/internal/domain/settings"
)

// SettingsHandler exposes the admin key-value configuration store
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SettingRequest represents one key-value pair to store
type SettingRequest struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=text number boolean json"`
	Description string `json:"description" binding:"max=500"`
}

func (r *SettingRequest) toInput() settingsapp.SettingInput {
	return settingsapp.SettingInput{
		Key:         r.Key,
		Value:       r.Value,
		Type:        settings.ValueType(r.Type),
		Description: r.Description,
	}
}

// BulkSettingsRequest represents a batch of settings to store
type BulkSettingsRequest struct {
	Settings []SettingRequest `json:"settings" binding:"required,min=1,dive"`
}

// List returns all settings ordered by key
func (h *SettingsHandler) List(c *gin.Context) {
	items, err := h.settingsService.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one setting by its key
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingsService.Get(c.Request.Context(), key)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, setting)
}

// Set creates or overwrites one setting
func (h *SettingsHandler) Set(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.settingsService.Set(c.Request.Context(), req.toInput())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, setting)
}

// SetBulk stores a batch of settings and reports how many were written
func (h *SettingsHandler) SetBulk(c *gin.Context) {
	var req BulkSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inputs := make([]settingsapp.SettingInput, len(req.Settings))
	for i, item := range req.Settings {
		inputs[i] = item.toInput()
	}

	stored, err := h.settingsService.SetBulk(c.Request.Context(), inputs)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, gin.H{"stored": stored})
}

// Delete removes one setting by its key
func (h *SettingsHandler) Delete(c *gin.Context) {
	key := c.Param("key")

	if err := h.settingsService.Delete(c.Request.Context(), key); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
