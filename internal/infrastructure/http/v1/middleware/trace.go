package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "labelprint/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace attaches correlation ids to the request context and echoes them
// back. Client-supplied ids are kept when present.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tc := appctx.TraceFor(ctx, c.GetHeader(HeaderRequestID), c.GetHeader(HeaderTraceID))
		c.Request = c.Request.WithContext(appctx.WithTrace(ctx, tc))

		c.Set("request_id", tc.RequestID)
		c.Set("trace_id", tc.TraceID)
		c.Header(HeaderRequestID, tc.RequestID)
		c.Header(HeaderTraceID, tc.TraceID)

		c.Next()
	}
}
