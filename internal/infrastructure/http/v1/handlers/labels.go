package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/internal/domain/labels"
	"labelprint/internal/infrastructure/http/v1/dto"
)

// DefaultByBaseNameLimit applies when the limit query is absent.
const DefaultByBaseNameLimit = 100

// LabelService is implemented by *labels.Service.
type LabelService interface {
	Search(ctx context.Context, code string) (*labels.GeneratedLabel, error)
	Verify(ctx context.Context, code string) (*labels.Verification, error)
	ByBaseName(ctx context.Context, baseName string, limit int) ([]*labels.GeneratedLabel, error)
	Export(ctx context.Context, f labels.ExportFilter) ([]*labels.GeneratedLabel, error)
}

// LabelHandler serves /labels.
type LabelHandler struct {
	*BaseHandler
	service LabelService
}

// NewLabelHandler creates a new generated label handler.
func NewLabelHandler(base *BaseHandler, service LabelService) *LabelHandler {
	return &LabelHandler{BaseHandler: base, service: service}
}

// Search handles GET /labels/search/:code.
func (h *LabelHandler) Search(c *gin.Context) {
	label, err := h.service.Search(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, label)
}

// Verify handles GET /labels/verify/:code. Unknown codes are a normal
// answer, not an error.
func (h *LabelHandler) Verify(c *gin.Context) {
	v, err := h.service.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, v)
}

// ByBaseName handles GET /labels/by-basename/:baseName.
func (h *LabelHandler) ByBaseName(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", DefaultByBaseNameLimit)

	items, err := h.service.ByBaseName(c.Request.Context(), c.Param("baseName"), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	if items == nil {
		items = []*labels.GeneratedLabel{}
	}
	h.OK(c, items)
}

// Export handles GET /labels/export as a JSON file download.
func (h *LabelHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f := labels.ExportFilter{BaseName: q.BaseName}
	var ok bool
	if f.From, ok = h.ParseDate(c, "startDate", q.StartDate, false); !ok {
		return
	}
	if f.To, ok = h.ParseDate(c, "endDate", q.EndDate, true); !ok {
		return
	}

	items, err := h.service.Export(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	now := h.now().UTC()
	body, err := json.MarshalIndent(dto.NewExportResponse(items, now), "", "  ")
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.Attachment(c, "labels-export-"+now.Format(dateLayout)+".json", "application/json", body)
}
