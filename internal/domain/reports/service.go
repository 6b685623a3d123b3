package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"labelprint/internal/core/apperror"
	"labelprint/internal/domain"
)

const (
	DefaultDays     = 7
	MaxDays         = 366
	DefaultTopLimit = 10
	MaxTopLimit     = 100
)

var hundred = decimal.NewFromInt(100)

// Service provides report generation operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary returns overall counters. SuccessRate is a percentage rounded to
// two places and is zero when nothing was printed.
func (s *Service) Summary(ctx context.Context, r domain.TimeRange) (*Summary, error) {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return nil, apperror.NewValidation("startDate must be before endDate")
	}

	t, err := s.repo.Totals(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("print totals: %w", err)
	}

	return &Summary{
		TotalPrints:      t.TotalPrints,
		TotalLabels:      t.TotalLabels,
		SuccessfulPrints: t.SuccessfulPrints,
		FailedPrints:     t.FailedPrints,
		SuccessRate:      SuccessRate(t.SuccessfulPrints, t.TotalPrints),
		BluetoothPrints:  t.BluetoothPrints,
		SerialPrints:     t.SerialPrints,
		USBPrints:        t.USBPrints,
		NetworkPrints:    t.NetworkPrints,
		Downloads:        t.Downloads,
		AvgDuration:      decimal.NewFromFloat(t.AvgDurationMS).Round(0),
	}, nil
}

// Daily returns per-day counters for the last days days, today included.
func (s *Service) Daily(ctx context.Context, days int) ([]DailyStat, error) {
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	stats, err := s.repo.Daily(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	if stats == nil {
		stats = []DailyStat{}
	}
	return stats, nil
}

// TopLabels returns the most printed base names.
func (s *Service) TopLabels(ctx context.Context, limit int) ([]TopLabel, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}

	top, err := s.repo.TopLabels(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top labels: %w", err)
	}
	if top == nil {
		top = []TopLabel{}
	}
	return top, nil
}

// SuccessRate returns successful/total as a percentage with two decimals.
func SuccessRate(successful, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(successful).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}
