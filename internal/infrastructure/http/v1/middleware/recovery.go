// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"labelprint/internal/core/apperror"
	"labelprint/pkg/logger"
)

// Recovery turns a panic into a 500 and logs the stack. It sits outside
// ErrorHandler, so it renders the response itself.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				appErr := apperror.NewInternal(fmt.Errorf("panic: %v", err)).
					WithDetail("request_id", c.GetString("request_id"))
				_ = c.Error(appErr)

				// the panic skipped ErrorHandler
				if c.Writer.Written() {
					c.Abort()
					return
				}
				writeError(c, appErr)
			}
		}()
		c.Next()
	}
}
