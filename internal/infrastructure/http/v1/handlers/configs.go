package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/id"
	"labelprint/internal/domain"
	"labelprint/internal/domain/labelconfig"
	"labelprint/internal/infrastructure/http/v1/dto"
)

// ConfigService is implemented by *labelconfig.Service.
type ConfigService interface {
	Create(ctx context.Context, in labelconfig.CreateInput) (*labelconfig.LabelConfig, error)
	Get(ctx context.Context, configID id.ID) (*labelconfig.LabelConfig, error)
	List(ctx context.Context, isTemplate *bool, page, limit int) (domain.ListResult[*labelconfig.LabelConfig], error)
	Recent(ctx context.Context, limit int) ([]*labelconfig.LabelConfig, error)
	Update(ctx context.Context, configID id.ID, in labelconfig.UpdateInput) (*labelconfig.LabelConfig, error)
	Delete(ctx context.Context, configID id.ID) error
	Generate(ctx context.Context, configID id.ID, save bool) (*labelconfig.GenerateResult, error)
}

// ConfigHandler serves /configs.
type ConfigHandler struct {
	*BaseHandler
	service ConfigService
}

// NewConfigHandler creates a new label configuration handler.
func NewConfigHandler(base *BaseHandler, service ConfigService) *ConfigHandler {
	return &ConfigHandler{BaseHandler: base, service: service}
}

// List handles GET /configs.
func (h *ConfigHandler) List(c *gin.Context) {
	var q dto.ConfigListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.IsTemplate, q.Page, q.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Recent handles GET /configs/recent.
func (h *ConfigHandler) Recent(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", labelconfig.DefaultRecentLimit)

	items, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	if items == nil {
		items = []*labelconfig.LabelConfig{}
	}
	h.OK(c, items)
}

// Create handles POST /configs.
func (h *ConfigHandler) Create(c *gin.Context) {
	var req dto.CreateConfigRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cfg)
}

// Get handles GET /configs/:id.
func (h *ConfigHandler) Get(c *gin.Context) {
	configID, ok := h.ParseID(c)
	if !ok {
		return
	}

	cfg, err := h.service.Get(c.Request.Context(), configID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}

// Update handles PUT /configs/:id.
func (h *ConfigHandler) Update(c *gin.Context) {
	configID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateConfigRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cfg, err := h.service.Update(c.Request.Context(), configID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}

// Delete handles DELETE /configs/:id.
func (h *ConfigHandler) Delete(c *gin.Context) {
	configID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), configID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "Configuration deleted successfully")
}

// Generate handles POST /configs/:id/generate. The body is optional.
func (h *ConfigHandler) Generate(c *gin.Context) {
	configID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.GenerateRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Generate(c.Request.Context(), configID, req.SaveToDB)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromGenerateResult(result))
}
