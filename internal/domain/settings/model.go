// Package settings stores application-wide printer preferences.
package settings

import (
	"time"

	"labelprint/internal/core/apperror"
	"labelprint/pkg/labelcmd"
)

// PrinterKey is the app_settings key holding PrinterSettings.
const PrinterKey = "printer_settings"

// LabelSize is the physical label in millimetres.
type LabelSize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit"`
}

// PrinterSettings are the defaults a client starts a print job with.
type PrinterSettings struct {
	DefaultPrinter    string             `json:"defaultPrinter"`
	DefaultConnection string             `json:"defaultConnection"`
	DefaultDialect    labelcmd.Dialect   `json:"defaultDialect"`
	LabelSize         LabelSize          `json:"labelSize"`
	DefaultCodeType   labelcmd.Symbology `json:"defaultCodeType"`
	BaudRate          int                `json:"baudRate"`
	AutoReconnect     bool               `json:"autoReconnect"`
	PrintDelayMS      int                `json:"printDelay"`
	Border            bool               `json:"border"`
	PrinterAddress    string             `json:"printerAddress,omitempty"`
	UpdatedAt         time.Time          `json:"updatedAt,omitempty"`
}

// Defaults returns the settings used before anything has been saved.
func Defaults() PrinterSettings {
	return PrinterSettings{
		DefaultPrinter:    "TSC Alpha 40L",
		DefaultConnection: "bluetooth",
		DefaultDialect:    labelcmd.DialectTSPL,
		LabelSize:         LabelSize{Width: 50, Height: 50, Unit: "mm"},
		DefaultCodeType:   labelcmd.Barcode,
		BaudRate:          9600,
		AutoReconnect:     true,
		PrintDelayMS:      300,
		Border:            true,
	}
}

var baudRates = map[int]bool{
	1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// Validate checks field invariants.
func (s *PrinterSettings) Validate() error {
	if !s.DefaultDialect.Valid() {
		return apperror.NewUnsupportedDialect(string(s.DefaultDialect))
	}
	if !s.DefaultCodeType.Valid() {
		return apperror.NewUnsupportedSymbology(string(s.DefaultCodeType))
	}
	if s.LabelSize.Width <= 0 || s.LabelSize.Height <= 0 {
		return apperror.NewValidation("labelSize must be positive").
			WithDetail("width", s.LabelSize.Width).
			WithDetail("height", s.LabelSize.Height)
	}
	if !baudRates[s.BaudRate] {
		return apperror.NewValidation("unsupported baudRate").WithDetail("baudRate", s.BaudRate)
	}
	if s.PrintDelayMS < 0 {
		return apperror.NewValidation("printDelay must not be negative")
	}
	return nil
}
