package labels

import (
	"context"
	"time"

	"labelprint/internal/core/id"
	"labelprint/internal/domain"
)

// ExportFilter selects labels for export. Results are ordered by base name,
// then sequence number.
type ExportFilter struct {
	BaseName string
	domain.TimeRange
}

// Repository persists generated labels.
type Repository interface {
	// InsertMany skips codes that already exist and returns how many rows were written.
	InsertMany(ctx context.Context, items []*GeneratedLabel) (int64, error)
	GetByCode(ctx context.Context, code string) (*GeneratedLabel, error)
	Exists(ctx context.Context, code string) (bool, error)
	ListByBaseName(ctx context.Context, baseName string, limit int) ([]*GeneratedLabel, error)
	Export(ctx context.Context, f ExportFilter) ([]*GeneratedLabel, error)
	// MarkPrinted flags codes as printed by historyID and bumps their print count.
	MarkPrinted(ctx context.Context, codes []string, historyID id.ID, at time.Time) (int64, error)
	Counts(ctx context.Context) (Counts, error)
}
