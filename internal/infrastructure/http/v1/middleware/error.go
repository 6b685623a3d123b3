package middleware

import (
	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/internal/infrastructure/http/v1/dto"
	"labelprint/pkg/logger"
)

// ErrorHandler renders the last error a handler registered with c.Error.
// Errors that are not *apperror.AppError become a generic 500; causes are
// logged and never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := apperror.AsAppError(err)
		if !ok {
			logger.Error(c.Request.Context(), "unhandled error", "error", err)
			appErr = apperror.NewInternal(err).WithDetail("request_id", c.GetString("request_id"))
		} else if appErr.Err != nil {
			logger.Error(c.Request.Context(), "request error", "code", appErr.Code, "cause", appErr.Err)
		}
		writeError(c, appErr)
	}
}

func writeError(c *gin.Context, e *apperror.AppError) {
	c.AbortWithStatusJSON(e.HTTPStatus, dto.ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
