package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"labelprint/pkg/logger"
)

// Service reads and writes printer settings.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Printer returns the stored settings, or Defaults when none were saved.
// Fields missing from the stored document keep their default values.
func (s *Service) Printer(ctx context.Context) (PrinterSettings, error) {
	out := Defaults()

	raw, err := s.repo.Get(ctx, PrinterKey)
	if err != nil {
		return out, fmt.Errorf("load printer settings: %w", err)
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Defaults(), fmt.Errorf("decode printer settings: %w", err)
	}
	return out, nil
}

// UpdatePrinter validates and stores in.
func (s *Service) UpdatePrinter(ctx context.Context, in PrinterSettings) (PrinterSettings, error) {
	if err := in.Validate(); err != nil {
		return PrinterSettings{}, err
	}
	in.UpdatedAt = s.now()

	raw, err := json.Marshal(in)
	if err != nil {
		return PrinterSettings{}, fmt.Errorf("encode printer settings: %w", err)
	}
	if err := s.repo.Put(ctx, PrinterKey, raw); err != nil {
		return PrinterSettings{}, fmt.Errorf("save printer settings: %w", err)
	}

	logger.Info(ctx, "printer settings updated", "printer", in.DefaultPrinter, "dialect", in.DefaultDialect)
	return in, nil
}

// Reset restores Defaults.
func (s *Service) Reset(ctx context.Context) (PrinterSettings, error) {
	return s.UpdatePrinter(ctx, Defaults())
}
