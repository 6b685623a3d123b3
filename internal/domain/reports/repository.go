package reports

import (
	"context"
	"time"

	"labelprint/internal/domain"
)

// Repository aggregates print history.
type Repository interface {
	// Totals aggregates jobs created inside r; an empty range covers everything.
	Totals(ctx context.Context, r domain.TimeRange) (Totals, error)
	// Daily returns one row per day with activity since the given instant,
	// oldest first. Dates are formatted YYYY-MM-DD.
	Daily(ctx context.Context, since time.Time) ([]DailyStat, error)
	// TopLabels orders by total quantity, largest first.
	TopLabels(ctx context.Context, limit int) ([]TopLabel, error)
}
