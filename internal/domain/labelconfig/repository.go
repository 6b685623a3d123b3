package labelconfig

import (
	"context"
	"time"

	"labelprint/internal/core/id"
	"labelprint/internal/domain"
)

// Filter selects configs for List.
type Filter struct {
	IsTemplate *bool
	domain.Page
}

// Repository persists label configurations.
type Repository interface {
	Create(ctx context.Context, cfg *LabelConfig) error
	GetByID(ctx context.Context, configID id.ID) (*LabelConfig, error)
	// Update writes cfg if its Version still matches, then bumps Version.
	Update(ctx context.Context, cfg *LabelConfig) error
	Delete(ctx context.Context, configID id.ID) error
	// List orders by last_used, newest first.
	List(ctx context.Context, f Filter) (domain.ListResult[*LabelConfig], error)
	Recent(ctx context.Context, limit int) ([]*LabelConfig, error)
	TouchLastUsed(ctx context.Context, configID id.ID, at time.Time) error
	Count(ctx context.Context) (int64, error)
}
