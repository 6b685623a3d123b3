// Package printing turns a base pattern into printer commands and delivers
// them: as a downloadable file or straight to a network printer.
package printing

import (
	"labelprint/internal/core/id"
	"labelprint/internal/domain/printhistory"
	"labelprint/pkg/labelcmd"
)

// Target is where a job's commands go.
type Target string

const (
	TargetDownload Target = "download"
	TargetNetwork  Target = "network"
)

// Request describes the labels to encode. Either ConfigID or BaseName is
// required; with ConfigID, BaseName and Quantity come from the stored
// configuration.
type Request struct {
	ConfigID *id.ID
	BaseName string
	Quantity int
	CodeType string
	Dialect  string
	// Border overrides the default when set.
	Border *bool
}

// JobRequest is a Request plus delivery details.
type JobRequest struct {
	Request
	Target Target
	// PrinterAddress is host or host:port for TargetNetwork.
	PrinterAddress string
	PrinterName    string
}

// Encoded is a batch ready for delivery.
type Encoded struct {
	Batch       labelcmd.Batch
	Codes       []string
	BaseName    string
	Symbology   labelcmd.Symbology
	ConfigID    *id.ID
	FileName    string
	ContentType string
}

// File is a stored command file.
type File struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Size       int    `json:"size"`
	Compressed bool   `json:"compressed"`
}

// JobResult is the outcome of a print job. A job that failed at the printer
// still has a History entry.
type JobResult struct {
	History *printhistory.PrintHistory `json:"history"`
	Codes   []string                   `json:"codes"`
	File    *File                      `json:"file,omitempty"`
}

// CommandContentType is served for command files.
const CommandContentType = "text/plain; charset=utf-8"
