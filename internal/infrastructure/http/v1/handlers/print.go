package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/internal/domain/printing"
	"labelprint/internal/infrastructure/http/v1/dto"
	"labelprint/pkg/labelcmd/preview"
)

// HeaderLabelCount carries the number of labels in an encoded file.
const HeaderLabelCount = "X-Label-Count"

// PrintService is implemented by *printing.Service.
type PrintService interface {
	Encode(ctx context.Context, req printing.Request) (*printing.Encoded, error)
	Print(ctx context.Context, req printing.JobRequest) (*printing.JobResult, error)
	Preview(text string) (preview.Label, error)
}

// PrintHandler serves /print.
type PrintHandler struct {
	*BaseHandler
	service PrintService
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(base *BaseHandler, service PrintService) *PrintHandler {
	return &PrintHandler{BaseHandler: base, service: service}
}

// Encode handles POST /print/encode and returns the command file.
func (h *PrintHandler) Encode(c *gin.Context) {
	var body dto.EncodeRequest
	if !h.BindJSON(c, &body) {
		return
	}
	req, err := body.ToRequest()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	enc, err := h.service.Encode(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header(HeaderLabelCount, strconv.Itoa(enc.Batch.Len()))
	h.Attachment(c, enc.FileName, enc.ContentType, enc.Batch.Bytes())
}

// Job handles POST /print/jobs. A printer failure still created a history
// entry; its id is in the error details.
func (h *PrintHandler) Job(c *gin.Context) {
	var body dto.PrintJobRequest
	if !h.BindJSON(c, &body) {
		return
	}
	req, err := body.ToJobRequest()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	result, err := h.service.Print(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, result)
}

// Preview handles POST /print/preview.
func (h *PrintHandler) Preview(c *gin.Context) {
	var body dto.PreviewRequest
	if !h.BindJSON(c, &body) {
		return
	}

	label, err := h.service.Preview(body.TSPLCode)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, label)
}
