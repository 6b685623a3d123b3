package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/internal/domain"
	"labelprint/internal/domain/printhistory"
	"labelprint/internal/infrastructure/http/v1/dto"
)

// HistoryService is implemented by *printhistory.Service.
type HistoryService interface {
	Record(ctx context.Context, h *printhistory.PrintHistory) error
	Get(ctx context.Context, historyID id.ID) (*printhistory.PrintHistory, error)
	List(ctx context.Context, f printhistory.Filter) (domain.ListResult[*printhistory.PrintHistory], error)
	Delete(ctx context.Context, historyID id.ID) error
	BulkDelete(ctx context.Context, ids []id.ID, olderThan *time.Time) (int64, error)
}

// HistoryHandler serves /print-history.
type HistoryHandler struct {
	*BaseHandler
	service HistoryService
}

// NewHistoryHandler creates a new print history handler.
func NewHistoryHandler(base *BaseHandler, service HistoryService) *HistoryHandler {
	return &HistoryHandler{BaseHandler: base, service: service}
}

// Create handles POST /print-history.
func (h *HistoryHandler) Create(c *gin.Context) {
	var req dto.CreateHistoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	entry, err := req.ToModel()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid configId").WithDetail("configId", req.ConfigID))
		return
	}

	if err := h.service.Record(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry)
}

// List handles GET /print-history.
func (h *HistoryHandler) List(c *gin.Context) {
	var q dto.HistoryListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f := printhistory.Filter{
		Status:         printhistory.Status(q.Status),
		ConnectionType: printhistory.ConnectionType(q.ConnectionType),
		BaseName:       q.BaseName,
		Page:           domain.Page{Page: q.Page, Limit: q.Limit},
	}
	var ok bool
	if f.From, ok = h.ParseDate(c, "startDate", q.StartDate, false); !ok {
		return
	}
	if f.To, ok = h.ParseDate(c, "endDate", q.EndDate, true); !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Get handles GET /print-history/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	historyID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entry, err := h.service.Get(c.Request.Context(), historyID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// Delete handles DELETE /print-history/:id.
func (h *HistoryHandler) Delete(c *gin.Context) {
	historyID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), historyID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "Print history entry deleted successfully")
}

// BulkDelete handles POST /print-history/bulk-delete.
func (h *HistoryHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ids := make([]id.ID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		v, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format").WithDetail("id", raw))
			return
		}
		ids = append(ids, v)
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), ids, req.OlderThan)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Success: true, Deleted: deleted})
}
