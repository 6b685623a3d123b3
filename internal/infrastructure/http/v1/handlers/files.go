package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/internal/infrastructure/filestore"
)

// FileOpener is implemented by *filestore.Store.
type FileOpener interface {
	Open(ctx context.Context, key string) ([]byte, string, error)
}

// FileHandler serves stored command files for the local storage driver.
type FileHandler struct {
	*BaseHandler
	files FileOpener
}

// NewFileHandler creates a new file handler.
func NewFileHandler(base *BaseHandler, files FileOpener) *FileHandler {
	return &FileHandler{BaseHandler: base, files: files}
}

// Download handles GET /files/:key.
func (h *FileHandler) Download(c *gin.Context) {
	key := c.Param("key")
	if err := filestore.ValidateKey(key); err != nil {
		h.Error(c, apperror.NewValidation("invalid file key").WithDetail("key", key))
		return
	}

	data, contentType, err := h.files.Open(c.Request.Context(), key)
	if errors.Is(err, filestore.ErrNotFound) {
		h.Error(c, apperror.NewNotFound("file", key))
		return
	}
	if err != nil {
		h.Error(c, apperror.NewStorage(err))
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Attachment(c, filestore.DownloadName(key), contentType, data)
}
