package printhistory

import (
	"context"
	"fmt"
	"time"

	"labelprint/internal/core/apperror"
	appctx "labelprint/internal/core/context"
	"labelprint/internal/core/id"
	"labelprint/internal/core/tx"
	"labelprint/internal/domain"
	"labelprint/pkg/logger"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PrintMarker flags labels as printed. Satisfied by *labels.Service.
type PrintMarker interface {
	MarkPrinted(ctx context.Context, codes []string, historyID id.ID) (int64, error)
}

// Service records and queries print jobs.
type Service struct {
	repo   Repository
	marker PrintMarker
	txm    tx.Manager
	now    func() time.Time
}

// NewService creates a new print history service.
func NewService(repo Repository, marker PrintMarker, txm tx.Manager) *Service {
	return &Service{
		repo:   repo,
		marker: marker,
		txm:    txm,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record stores a job and, in the same transaction, marks the codes that
// reached the printer as printed.
func (s *Service) Record(ctx context.Context, h *PrintHistory) error {
	h.Normalize()
	if h.PrintedBy == "" {
		h.PrintedBy = appctx.Operator(ctx)
	}
	if err := h.Validate(); err != nil {
		return err
	}
	if id.IsNil(h.ID) {
		h.ID = id.New()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, h); err != nil {
			return fmt.Errorf("create print history: %w", err)
		}
		if codes := h.PrintedCodes(); len(codes) > 0 {
			if _, err := s.marker.MarkPrinted(ctx, codes, h.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "print job recorded",
		"id", h.ID,
		"status", h.Status,
		"connection", h.ConnectionType,
		"printed", h.PrintedCount,
		"quantity", h.Quantity,
	)
	return nil
}

// Get returns one job.
func (s *Service) Get(ctx context.Context, historyID id.ID) (*PrintHistory, error) {
	return s.repo.GetByID(ctx, historyID)
}

// List returns a page of jobs.
func (s *Service) List(ctx context.Context, f Filter) (domain.ListResult[*PrintHistory], error) {
	if f.Status != "" && !f.Status.Valid() {
		return domain.ListResult[*PrintHistory]{}, apperror.NewValidation("unknown status").WithDetail("status", f.Status)
	}
	if f.ConnectionType != "" && !f.ConnectionType.Valid() {
		return domain.ListResult[*PrintHistory]{}, apperror.NewValidation("unknown connectionType").WithDetail("connectionType", f.ConnectionType)
	}
	f.Page = domain.NewPage(f.Page.Page, f.Limit, DefaultPageLimit, MaxPageLimit)
	return s.repo.List(ctx, f)
}

// Delete removes one job.
func (s *Service) Delete(ctx context.Context, historyID id.ID) error {
	return s.repo.Delete(ctx, historyID)
}

// BulkDelete removes jobs by id, or, when ids is empty, every job created
// before olderThan. One of the two is required.
func (s *Service) BulkDelete(ctx context.Context, ids []id.ID, olderThan *time.Time) (int64, error) {
	var (
		n   int64
		err error
	)
	switch {
	case len(ids) > 0:
		n, err = s.repo.DeleteByIDs(ctx, ids)
	case olderThan != nil:
		n, err = s.repo.DeleteOlderThan(ctx, *olderThan)
	default:
		return 0, apperror.NewValidation("Please provide either ids or olderThan parameter")
	}
	if err != nil {
		return 0, fmt.Errorf("bulk delete print history: %w", err)
	}

	logger.Info(ctx, "print history deleted", "count", n)
	return n, nil
}

// Count returns the number of stored jobs.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
