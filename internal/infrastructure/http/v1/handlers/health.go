package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"labelprint/internal/domain/labels"
	"labelprint/internal/infrastructure/storage/postgres"
	"labelprint/internal/infrastructure/transport"
)

// Version is reported by /health/info. Overridden at build time.
var Version = "0.1.0"

type (
	// Pinger checks database connectivity.
	Pinger interface {
		Ping(ctx context.Context) error
	}
	// Counter counts rows of one table.
	Counter interface {
		Count(ctx context.Context) (int64, error)
	}
	// LabelCounter reports generated and printed labels.
	LabelCounter interface {
		Counts(ctx context.Context) (labels.Counts, error)
	}
	// PrinterStates lists known network printers.
	PrinterStates interface {
		States() []transport.State
	}
)

// HealthDeps are the checks behind /health. Nil fields are skipped.
type HealthDeps struct {
	DB        Pinger
	PoolStats func() postgres.PoolStats
	Labels    LabelCounter
	History   Counter
	Configs   Counter
	Printers  PrinterStates
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	deps HealthDeps
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Live handles the liveness probe.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles the readiness probe.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.deps.DB != nil {
		if err := h.deps.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"checks": map[string]string{"database": "unhealthy: " + err.Error()},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{"database": "healthy"},
	})
}

// Info returns application information and record counts. A failing count
// is reported in place of its value.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	ctx := c.Request.Context()
	counts := gin.H{}

	if h.deps.Labels != nil {
		if lc, err := h.deps.Labels.Counts(ctx); err != nil {
			counts["labels"] = errorValue(err)
		} else {
			counts["labels"] = lc.Total
			counts["printedLabels"] = lc.Printed
		}
	}
	if h.deps.History != nil {
		counts["printJobs"] = countValue(ctx, h.deps.History)
	}
	if h.deps.Configs != nil {
		counts["configs"] = countValue(ctx, h.deps.Configs)
	}

	body := gin.H{
		"app":     "labelprint",
		"version": Version,
		"counts":  counts,
	}
	if h.deps.PoolStats != nil {
		body["database"] = h.deps.PoolStats()
	}
	if h.deps.Printers != nil {
		body["printers"] = h.deps.Printers.States()
	}
	c.JSON(http.StatusOK, body)
}

func countValue(ctx context.Context, c Counter) any {
	n, err := c.Count(ctx)
	if err != nil {
		return errorValue(err)
	}
	return n
}

func errorValue(err error) gin.H {
	return gin.H{"error": err.Error()}
}
