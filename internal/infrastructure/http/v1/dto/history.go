package dto

import (
	"time"

	"labelprint/internal/core/entity"
	"labelprint/internal/core/id"
	"labelprint/internal/domain/printhistory"
	"labelprint/pkg/labelcmd"
)

// CreateHistoryRequest is a job reported by a client that printed on its own
// connection (bluetooth, serial, usb) or downloaded the command file.
type CreateHistoryRequest struct {
	ConfigID       *string           `json:"configId"`
	BaseName       string            `json:"baseName" binding:"required"`
	Quantity       int               `json:"quantity" binding:"required"`
	CodeType       string            `json:"codeType"`
	Dialect        string            `json:"dialect"`
	GeneratedCodes []string          `json:"generatedCodes"`
	ConnectionType string            `json:"connectionType" binding:"required"`
	PrinterName    string            `json:"printerName"`
	Status         string            `json:"status" binding:"required"`
	PrintedCount   int               `json:"printedCount"`
	ErrorMessage   string            `json:"errorMessage"`
	Duration       int64             `json:"duration"`
	DeviceInfo     entity.Attributes `json:"deviceInfo"`
}

func (r CreateHistoryRequest) ToModel() (*printhistory.PrintHistory, error) {
	configID, err := id.ParseOptional(r.ConfigID)
	if err != nil {
		return nil, err
	}
	return &printhistory.PrintHistory{
		ConfigID:       configID,
		BaseName:       r.BaseName,
		Quantity:       r.Quantity,
		CodeType:       labelcmd.Symbology(r.CodeType),
		Dialect:        r.Dialect,
		GeneratedCodes: r.GeneratedCodes,
		ConnectionType: printhistory.ConnectionType(r.ConnectionType),
		PrinterName:    r.PrinterName,
		Status:         printhistory.Status(r.Status),
		PrintedCount:   r.PrintedCount,
		ErrorMessage:   r.ErrorMessage,
		DurationMS:     r.Duration,
		DeviceInfo:     r.DeviceInfo,
	}, nil
}

// HistoryListQuery is the query of GET /print-history.
type HistoryListQuery struct {
	PageQuery
	Status         string `form:"status"`
	ConnectionType string `form:"connectionType"`
	BaseName       string `form:"baseName"`
	StartDate      string `form:"startDate"`
	EndDate        string `form:"endDate"`
}

// BulkDeleteRequest removes either the listed jobs or everything older
// than a cutoff.
type BulkDeleteRequest struct {
	IDs       []string   `json:"ids"`
	OlderThan *time.Time `json:"olderThan"`
}

// StatsRangeQuery is the query of GET /print-history/stats/summary.
type StatsRangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
