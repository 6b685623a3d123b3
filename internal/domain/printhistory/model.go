// Package printhistory records print jobs, whether they ran on the server
// or were reported by a browser client.
package printhistory

import (
	"time"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/entity"
	"labelprint/internal/core/id"
	"labelprint/pkg/labelcmd"
)

// ConnectionType is how the job reached the printer.
type ConnectionType string

const (
	ConnectionBluetooth ConnectionType = "bluetooth"
	ConnectionSerial    ConnectionType = "serial"
	ConnectionUSB       ConnectionType = "usb"
	ConnectionDownload  ConnectionType = "download"
	ConnectionNetwork   ConnectionType = "network"
)

// Valid reports whether c is a known connection type.
func (c ConnectionType) Valid() bool {
	switch c {
	case ConnectionBluetooth, ConnectionSerial, ConnectionUSB, ConnectionDownload, ConnectionNetwork:
		return true
	}
	return false
}

// Status is the outcome of a job.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPartial Status = "partial"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusPartial:
		return true
	}
	return false
}

// DefaultPrinterName is stored when a client does not report one.
const DefaultPrinterName = "Unknown"

// PrintHistory is one print job.
type PrintHistory struct {
	ID             id.ID              `db:"id" json:"id"`
	ConfigID       *id.ID             `db:"config_id" json:"configId,omitempty"`
	BaseName       string             `db:"base_name" json:"baseName"`
	Quantity       int                `db:"quantity" json:"quantity"`
	CodeType       labelcmd.Symbology `db:"code_type" json:"codeType"`
	Dialect        string             `db:"dialect" json:"dialect,omitempty"`
	GeneratedCodes []string           `db:"generated_codes" json:"generatedCodes"`
	ConnectionType ConnectionType     `db:"connection_type" json:"connectionType"`
	PrinterName    string             `db:"printer_name" json:"printerName"`
	Status         Status             `db:"status" json:"status"`
	PrintedCount   int                `db:"printed_count" json:"printedCount"`
	ErrorMessage   string             `db:"error_message" json:"errorMessage,omitempty"`
	DurationMS     int64              `db:"duration_ms" json:"duration"`
	DeviceInfo     entity.Attributes  `db:"device_info" json:"deviceInfo,omitempty"`
	FileKey        string             `db:"file_key" json:"fileKey,omitempty"`
	PrintedBy      string             `db:"printed_by" json:"printedBy"`
	CreatedAt      time.Time          `db:"created_at" json:"createdAt"`
}

// Normalize fills defaults the way clients expect: unknown printer name,
// printed count equal to quantity for successful jobs.
func (h *PrintHistory) Normalize() {
	if h.PrinterName == "" {
		h.PrinterName = DefaultPrinterName
	}
	if h.GeneratedCodes == nil {
		h.GeneratedCodes = []string{}
	}
	if h.PrintedCount == 0 && h.Status == StatusSuccess {
		h.PrintedCount = h.Quantity
	}
	if h.CodeType == "" {
		h.CodeType = labelcmd.Barcode
	}
}

// PrintedCodes returns the codes known to have been printed: all of them on
// success, the leading PrintedCount on a partial job, none on failure.
func (h *PrintHistory) PrintedCodes() []string {
	switch h.Status {
	case StatusSuccess:
		return h.GeneratedCodes
	case StatusPartial:
		return h.GeneratedCodes[:min(h.PrintedCount, len(h.GeneratedCodes))]
	}
	return nil
}

// Validate checks field invariants.
func (h *PrintHistory) Validate() error {
	if h.BaseName == "" {
		return apperror.NewValidation("baseName is required")
	}
	if h.Quantity < 1 {
		return apperror.NewValidation("quantity must be at least 1").WithDetail("quantity", h.Quantity)
	}
	if !h.CodeType.Valid() {
		return apperror.NewUnsupportedSymbology(string(h.CodeType))
	}
	if !h.ConnectionType.Valid() {
		return apperror.NewValidation("unknown connectionType").WithDetail("connectionType", h.ConnectionType)
	}
	if !h.Status.Valid() {
		return apperror.NewValidation("unknown status").WithDetail("status", h.Status)
	}
	if h.PrintedCount < 0 || h.PrintedCount > h.Quantity {
		return apperror.NewValidation("printedCount out of range").WithDetail("printedCount", h.PrintedCount)
	}
	if h.DurationMS < 0 {
		return apperror.NewValidation("duration must not be negative")
	}
	return nil
}
