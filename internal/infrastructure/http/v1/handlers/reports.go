package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"labelprint/internal/domain"
	"labelprint/internal/domain/reports"
	"labelprint/internal/infrastructure/http/v1/dto"
)

// StatsService is implemented by *reports.Service.
type StatsService interface {
	Summary(ctx context.Context, r domain.TimeRange) (*reports.Summary, error)
	Daily(ctx context.Context, days int) ([]reports.DailyStat, error)
	TopLabels(ctx context.Context, limit int) ([]reports.TopLabel, error)
}

// ReportsHandler serves /print-history/stats.
type ReportsHandler struct {
	*BaseHandler
	service StatsService
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service StatsService) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Summary handles GET /print-history/stats/summary.
func (h *ReportsHandler) Summary(c *gin.Context) {
	var q dto.StatsRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	var r domain.TimeRange
	var ok bool
	if r.From, ok = h.ParseDate(c, "startDate", q.StartDate, false); !ok {
		return
	}
	if r.To, ok = h.ParseDate(c, "endDate", q.EndDate, true); !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), r)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSummary(summary))
}

// Daily handles GET /print-history/stats/daily.
func (h *ReportsHandler) Daily(c *gin.Context) {
	days := h.ParseIntQuery(c, "days", reports.DefaultDays)

	stats, err := h.service.Daily(c.Request.Context(), days)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// TopLabels handles GET /print-history/stats/top-labels.
func (h *ReportsHandler) TopLabels(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", reports.DefaultTopLimit)

	top, err := h.service.TopLabels(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	if top == nil {
		top = []reports.TopLabel{}
	}
	h.OK(c, top)
}
