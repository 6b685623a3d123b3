package dto

import (
	"fmt"

	"labelprint/internal/core/id"
	"labelprint/internal/domain/printing"
)

// EncodeRequest is the body of POST /print/encode.
type EncodeRequest struct {
	ConfigID *string `json:"configId"`
	BaseName string  `json:"baseName"`
	Quantity int     `json:"quantity"`
	CodeType string  `json:"codeType"`
	Dialect  string  `json:"dialect"`
	Border   *bool   `json:"border"`
}

func (r EncodeRequest) ToRequest() (printing.Request, error) {
	configID, err := id.ParseOptional(r.ConfigID)
	if err != nil {
		return printing.Request{}, fmt.Errorf("invalid configId: %w", err)
	}
	return printing.Request{
		ConfigID: configID,
		BaseName: r.BaseName,
		Quantity: r.Quantity,
		CodeType: r.CodeType,
		Dialect:  r.Dialect,
		Border:   r.Border,
	}, nil
}

// PrintJobRequest is the body of POST /print/jobs.
type PrintJobRequest struct {
	EncodeRequest
	Target         string `json:"target" binding:"required"`
	PrinterAddress string `json:"printerAddress"`
	PrinterName    string `json:"printerName"`
}

func (r PrintJobRequest) ToJobRequest() (printing.JobRequest, error) {
	req, err := r.EncodeRequest.ToRequest()
	if err != nil {
		return printing.JobRequest{}, err
	}
	return printing.JobRequest{
		Request:        req,
		Target:         printing.Target(r.Target),
		PrinterAddress: r.PrinterAddress,
		PrinterName:    r.PrinterName,
	}, nil
}

// PreviewRequest carries TSPL text to lay out.
type PreviewRequest struct {
	TSPLCode string `json:"tsplCode"`
}
