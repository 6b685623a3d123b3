package dto

import (
	"time"

	"labelprint/internal/domain/labels"
)

// ExportQuery is the query of GET /labels/export. Dates accept
// YYYY-MM-DD or RFC 3339.
type ExportQuery struct {
	BaseName  string `form:"baseName"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// ExportResponse wraps exported labels.
type ExportResponse struct {
	Count      int                      `json:"count"`
	ExportedAt time.Time                `json:"exportedAt"`
	Labels     []*labels.GeneratedLabel `json:"labels"`
}

// NewExportResponse never returns a nil label list.
func NewExportResponse(items []*labels.GeneratedLabel, at time.Time) ExportResponse {
	if items == nil {
		items = []*labels.GeneratedLabel{}
	}
	return ExportResponse{Count: len(items), ExportedAt: at, Labels: items}
}
