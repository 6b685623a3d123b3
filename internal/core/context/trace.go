package context

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TraceContext carries the correlation ids of one request or CLI run.
// TraceID and SpanID use the OpenTelemetry hex encoding.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, tc *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.RequestID
	}
	return ""
}

// NewTraceContext starts fresh ids for work with no inbound request, such
// as a labelctl command.
func NewTraceContext() *TraceContext {
	return TraceFor(context.Background(), "", "")
}

// TraceFor derives the ids of an inbound request. A valid span in ctx
// supplies trace and span ids; otherwise traceID is used when it is a
// well-formed OpenTelemetry id. Anything missing is generated.
func TraceFor(ctx context.Context, requestID, traceID string) *TraceContext {
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return &TraceContext{
			TraceID:   sc.TraceID().String(),
			SpanID:    sc.SpanID().String(),
			RequestID: requestID,
		}
	}

	tid, err := trace.TraceIDFromHex(traceID)
	if err != nil {
		tid = trace.TraceID(uuid.New())
	}
	var sid trace.SpanID
	r := uuid.New()
	copy(sid[:], r[:8])

	return &TraceContext{
		TraceID:   tid.String(),
		SpanID:    sid.String(),
		RequestID: requestID,
	}
}
