package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/salonpos-api/internal/application/service"
	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/dto/request"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	gateService     *service.GateService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, gateService *service.GateService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, gateService: gateService}
}

// GetSettings retrieves salon settings. The stored password hash is
// blanked in the response; only its presence is reported.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings := h.settingsService.Snapshot()
	protected := settings.SettingsPassword != ""
	settings.SettingsPassword = ""

	response.OK(c, "Settings retrieved successfully", gin.H{
		"settings":  settings,
		"protected": protected,
		"locked":    h.gateService.IsLocked(),
	})
}

// UpdateSettings applies a partial settings update.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var patch entity.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	settings.SettingsPassword = ""

	response.OK(c, "Settings updated successfully", settings)
}

// Unlock verifies a password attempt against the settings gate.
func (h *SettingsHandler) Unlock(c *gin.Context) {
	var req request.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.gateService.AttemptUnlock(req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings unlocked", nil)
}

// Lock ends the current unlocked session.
func (h *SettingsHandler) Lock(c *gin.Context) {
	h.gateService.Lock()
	response.OK(c, "Settings locked", nil)
}

// ResetProtection removes the settings password entirely.
func (h *SettingsHandler) ResetProtection(c *gin.Context) {
	if err := h.gateService.ResetProtection(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings protection removed", nil)
}

// AddService appends an entry to the predefined service menu.
func (h *SettingsHandler) AddService(c *gin.Context) {
	var req request.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Service name is required")
		return
	}

	svc, err := h.settingsService.AddService(req.Name, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service added successfully", svc)
}

// RemoveService deletes a menu entry by id.
func (h *SettingsHandler) RemoveService(c *gin.Context) {
	if err := h.settingsService.RemoveService(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service removed successfully", nil)
}
