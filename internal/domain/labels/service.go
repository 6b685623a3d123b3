package labels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/pkg/logger"
)

const (
	DefaultBaseNameLimit = 100
	MaxBaseNameLimit     = 1000
)

// Service answers lookups on generated labels.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new labels service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Search returns the label for code or a NOT_FOUND error.
func (s *Service) Search(ctx context.Context, code string) (*GeneratedLabel, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewValidation("code is required")
	}
	label, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return label, nil
}

// Verify reports whether code has been generated.
func (s *Service) Verify(ctx context.Context, code string) (*Verification, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewValidation("code is required")
	}

	label, err := s.repo.GetByCode(ctx, code)
	switch {
	case err == nil:
		return &Verification{Code: code, Exists: true, Message: "Code exists in database", Label: label}, nil
	case apperror.IsNotFound(err):
		return &Verification{Code: code, Exists: false, Message: "Code not found"}, nil
	default:
		return nil, fmt.Errorf("verify %s: %w", code, err)
	}
}

// ByBaseName lists labels of one sequence in sequence order.
func (s *Service) ByBaseName(ctx context.Context, baseName string, limit int) ([]*GeneratedLabel, error) {
	if limit <= 0 {
		limit = DefaultBaseNameLimit
	}
	if limit > MaxBaseNameLimit {
		limit = MaxBaseNameLimit
	}
	return s.repo.ListByBaseName(ctx, baseName, limit)
}

// Export returns the labels matching f.
func (s *Service) Export(ctx context.Context, f ExportFilter) ([]*GeneratedLabel, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, apperror.NewValidation("startDate must be before endDate")
	}
	return s.repo.Export(ctx, f)
}

// Save stores freshly generated labels, ignoring codes that already exist.
func (s *Service) Save(ctx context.Context, items []*GeneratedLabel) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	n, err := s.repo.InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("save labels: %w", err)
	}
	if skipped := int64(len(items)) - n; skipped > 0 {
		logger.Debug(ctx, "skipped existing codes", "skipped", skipped)
	}
	return n, nil
}

// MarkPrinted records that codes went out with the print job historyID.
func (s *Service) MarkPrinted(ctx context.Context, codes []string, historyID id.ID) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	n, err := s.repo.MarkPrinted(ctx, codes, historyID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark printed: %w", err)
	}
	return n, nil
}

// Counts returns label totals.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Counts(ctx)
}
