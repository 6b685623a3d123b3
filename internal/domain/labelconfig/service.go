package labelconfig

import (
	"context"
	"fmt"
	"strings"
	"time"

	"labelprint/internal/core/apperror"
	appctx "labelprint/internal/core/context"
	"labelprint/internal/core/id"
	"labelprint/internal/core/tx"
	"labelprint/internal/domain"
	"labelprint/internal/domain/labels"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/logger"
)

const (
	DefaultPageLimit   = 10
	MaxPageLimit       = 100
	DefaultRecentLimit = 5
)

// LabelSaver stores generated labels. Satisfied by *labels.Service.
type LabelSaver interface {
	Save(ctx context.Context, items []*labels.GeneratedLabel) (int64, error)
}

// CreateInput is the payload for Create.
type CreateInput struct {
	Name        string
	BaseName    string
	Quantity    int
	CodeType    string
	LabelWidth  int
	LabelHeight int
	IsTemplate  bool
}

// UpdateInput carries the fields an operator may change. Nil means unchanged.
// Version, when set, must match the stored version.
type UpdateInput struct {
	Name       *string
	Quantity   *int
	CodeType   *string
	IsTemplate *bool
	Version    *int
}

// GenerateResult is the outcome of Generate.
type GenerateResult struct {
	Config *LabelConfig
	Codes  []string
	Saved  int64
}

// Service manages label configurations.
type Service struct {
	repo        Repository
	labels      LabelSaver
	txm         tx.Manager
	maxQuantity int
	now         func() time.Time
}

// NewService creates a new label configuration service.
func NewService(repo Repository, saver LabelSaver, txm tx.Manager, maxQuantity int) *Service {
	return &Service{
		repo:        repo,
		labels:      saver,
		txm:         txm,
		maxQuantity: maxQuantity,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// MaxQuantity returns the configured upper bound for a single run.
func (s *Service) MaxQuantity() int {
	return s.maxQuantity
}

// Create validates and stores a new configuration.
func (s *Service) Create(ctx context.Context, in CreateInput) (*LabelConfig, error) {
	sym, err := parseCodeType(in.CodeType)
	if err != nil {
		return nil, err
	}

	cfg, err := New(in.Name, in.BaseName, in.Quantity, sym, appctx.Operator(ctx), s.now())
	if err != nil {
		return nil, err
	}
	cfg.IsTemplate = in.IsTemplate
	if in.LabelWidth > 0 {
		cfg.LabelWidth = in.LabelWidth
	}
	if in.LabelHeight > 0 {
		cfg.LabelHeight = in.LabelHeight
	}

	if err := cfg.Validate(s.maxQuantity); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("create label config: %w", err)
	}

	logger.Info(ctx, "label config created", "id", cfg.ID, "base_name", cfg.BaseName, "quantity", cfg.Quantity)
	return cfg, nil
}

// Get returns one configuration.
func (s *Service) Get(ctx context.Context, configID id.ID) (*LabelConfig, error) {
	return s.repo.GetByID(ctx, configID)
}

// List returns a page of configurations, most recently used first.
func (s *Service) List(ctx context.Context, isTemplate *bool, page, limit int) (domain.ListResult[*LabelConfig], error) {
	f := Filter{
		IsTemplate: isTemplate,
		Page:       domain.NewPage(page, limit, DefaultPageLimit, MaxPageLimit),
	}
	return s.repo.List(ctx, f)
}

// Recent returns the most recently used configurations.
func (s *Service) Recent(ctx context.Context, limit int) ([]*LabelConfig, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return s.repo.Recent(ctx, limit)
}

// Update applies in to a configuration and bumps last used.
func (s *Service) Update(ctx context.Context, configID id.ID, in UpdateInput) (*LabelConfig, error) {
	var cfg *LabelConfig
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		cfg, err = s.repo.GetByID(ctx, configID)
		if err != nil {
			return err
		}
		if in.Version != nil && *in.Version != cfg.Version {
			return apperror.NewConcurrentModification("label_config", configID)
		}

		if in.Name != nil {
			cfg.Name = strings.TrimSpace(*in.Name)
		}
		if in.Quantity != nil {
			cfg.Quantity = *in.Quantity
		}
		if in.CodeType != nil {
			sym, err := parseCodeType(*in.CodeType)
			if err != nil {
				return err
			}
			cfg.CodeType = sym
		}
		if in.IsTemplate != nil {
			cfg.IsTemplate = *in.IsTemplate
		}

		now := s.now()
		cfg.LastUsed = now
		cfg.UpdatedAt = now

		if err := cfg.Validate(s.maxQuantity); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, cfg); err != nil {
			return err
		}
		cfg.Version++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Delete removes a configuration. Generated labels keep their codes.
func (s *Service) Delete(ctx context.Context, configID id.ID) error {
	if err := s.repo.Delete(ctx, configID); err != nil {
		return err
	}
	logger.Info(ctx, "label config deleted", "id", configID)
	return nil
}

// Generate expands the configuration into codes. With save, the codes are
// stored as generated labels (existing codes are kept as they are).
func (s *Service) Generate(ctx context.Context, configID id.ID, save bool) (*GenerateResult, error) {
	res := &GenerateResult{}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		cfg, err := s.repo.GetByID(ctx, configID)
		if err != nil {
			return err
		}
		codes, err := cfg.GenerateCodes()
		if err != nil {
			return err
		}

		now := s.now()
		if save {
			p, err := cfg.Pattern()
			if err != nil {
				return apperror.NewInvalidPattern(cfg.BaseName).WithCause(err)
			}
			saved, err := s.labels.Save(ctx, labels.FromCodes(p, codes, cfg.CodeType, &cfg.ID, now))
			if err != nil {
				return err
			}
			res.Saved = saved
		}

		if err := s.repo.TouchLastUsed(ctx, cfg.ID, now); err != nil {
			return err
		}
		cfg.LastUsed = now

		res.Config = cfg
		res.Codes = codes
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "codes generated", "config_id", configID, "count", len(res.Codes), "saved", res.Saved)
	return res, nil
}

// Count returns the number of stored configurations.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func parseCodeType(s string) (labelcmd.Symbology, error) {
	if strings.TrimSpace(s) == "" {
		return labelcmd.Barcode, nil
	}
	sym, err := labelcmd.ParseSymbology(s)
	if err != nil {
		return "", apperror.NewUnsupportedSymbology(s).WithCause(err)
	}
	return sym, nil
}
