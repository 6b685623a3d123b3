package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "labelprint/internal/core/context"
)

func TestWithContext_AddsTraceAndOperator(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{zap.New(core).Sugar()}

	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{TraceID: "t-1", SpanID: "s-1", RequestID: "r-1"})
	ctx = appctx.WithUser(ctx, &appctx.UserContext{Subject: "operator-7"})
	ctx = WithLogger(ctx, l)

	Info(ctx, "printed", "count", 3)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "t-1", fields["trace_id"])
		assert.Equal(t, "s-1", fields["span_id"])
		assert.Equal(t, "r-1", fields["request_id"])
		assert.Equal(t, "operator-7", fields["operator"])
		assert.Equal(t, int64(3), fields["count"])
	}
}

func TestWithComponent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := (&Logger{zap.New(core).Sugar()}).WithComponent("dispatcher")

	l.Debugw("chunk written")

	assert.Equal(t, "dispatcher", logs.All()[0].ContextMap()["component"])
}

func TestFromContext_UsesDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	core, logs := observer.New(zap.InfoLevel)
	prev := Default()
	SetDefault(&Logger{zap.New(core).Sugar()})
	t.Cleanup(func() { SetDefault(prev) })

	Warn(context.Background(), "printer slow", "printer", "dock-1")
	if assert.Len(t, logs.All(), 1) {
		assert.Equal(t, "dock-1", logs.All()[0].ContextMap()["printer"])
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	assert.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
}
