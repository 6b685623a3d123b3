// Package labelconfig_repo persists label configurations.
package labelconfig_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/internal/domain"
	"labelprint/internal/domain/labelconfig"
	"labelprint/internal/infrastructure/storage/postgres"
)

const tableName = "label_configs"

var _ labelconfig.Repository = (*Repo)(nil)

// Repo implements labelconfig.Repository.
type Repo struct {
	*postgres.Table[labelconfig.LabelConfig]
}

// New creates a new label config repository.
func New(txm *postgres.TxManager) *Repo {
	return &Repo{Table: postgres.NewTable[labelconfig.LabelConfig](txm, tableName)}
}

func (r *Repo) Create(ctx context.Context, cfg *labelconfig.LabelConfig) error {
	return r.Insert(ctx, cfg)
}

func (r *Repo) GetByID(ctx context.Context, configID id.ID) (*labelconfig.LabelConfig, error) {
	return r.Table.GetByID(ctx, configID)
}

func (r *Repo) Update(ctx context.Context, cfg *labelconfig.LabelConfig) error {
	return r.UpdateVersioned(ctx, cfg, "created_at", "created_by")
}

func (r *Repo) Delete(ctx context.Context, configID id.ID) error {
	return r.DeleteByID(ctx, configID)
}

// ListQuery is the filtered, unordered selection of List.
func (r *Repo) ListQuery(f labelconfig.Filter) squirrel.SelectBuilder {
	q := r.Select()
	if f.IsTemplate != nil {
		q = q.Where(squirrel.Eq{"is_template": *f.IsTemplate})
	}
	return q
}

func (r *Repo) List(ctx context.Context, f labelconfig.Filter) (domain.ListResult[*labelconfig.LabelConfig], error) {
	return r.Page(ctx, r.ListQuery(f), "last_used DESC", f.Page)
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]*labelconfig.LabelConfig, error) {
	return r.All(ctx, r.Select().OrderBy("last_used DESC").Limit(uint64(limit)))
}

func (r *Repo) TouchLastUsed(ctx context.Context, configID id.ID, at time.Time) error {
	sql, args, err := postgres.Builder().
		Update(tableName).
		Set("last_used", at).
		Where(squirrel.Eq{"id": configID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch: %w", err)
	}

	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError("update", tableName, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(tableName, configID)
	}
	return nil
}
