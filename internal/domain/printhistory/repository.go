package printhistory

import (
	"context"
	"time"

	"labelprint/internal/core/id"
	"labelprint/internal/domain"
)

// Filter selects jobs for List. BaseName matches case-insensitively anywhere.
type Filter struct {
	Status         Status
	ConnectionType ConnectionType
	BaseName       string
	domain.TimeRange
	domain.Page
}

// Repository persists print jobs.
type Repository interface {
	Create(ctx context.Context, h *PrintHistory) error
	GetByID(ctx context.Context, historyID id.ID) (*PrintHistory, error)
	// List orders by created_at, newest first.
	List(ctx context.Context, f Filter) (domain.ListResult[*PrintHistory], error)
	Delete(ctx context.Context, historyID id.ID) error
	DeleteByIDs(ctx context.Context, ids []id.ID) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
