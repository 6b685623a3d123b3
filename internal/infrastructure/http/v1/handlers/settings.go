package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"labelprint/internal/domain/settings"
)

// SettingsService is implemented by *settings.Service.
type SettingsService interface {
	Printer(ctx context.Context) (settings.PrinterSettings, error)
	UpdatePrinter(ctx context.Context, in settings.PrinterSettings) (settings.PrinterSettings, error)
	Reset(ctx context.Context) (settings.PrinterSettings, error)
}

// SettingsHandler serves /settings.
type SettingsHandler struct {
	*BaseHandler
	service SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service SettingsService) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service}
}

// GetPrinter handles GET /settings/printer.
func (h *SettingsHandler) GetPrinter(c *gin.Context) {
	s, err := h.service.Printer(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// UpdatePrinter handles PUT /settings/printer. Fields missing from the body
// keep their current values.
func (h *SettingsHandler) UpdatePrinter(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.service.Printer(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.BindJSON(c, &current) {
		return
	}

	updated, err := h.service.UpdatePrinter(ctx, current)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

// ResetPrinter handles POST /settings/printer/reset.
func (h *SettingsHandler) ResetPrinter(c *gin.Context) {
	s, err := h.service.Reset(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}
