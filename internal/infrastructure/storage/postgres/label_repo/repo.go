// Package label_repo persists generated labels.
package label_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"labelprint/internal/core/id"
	"labelprint/internal/domain/labels"
	"labelprint/internal/infrastructure/storage/postgres"
)

const tableName = "generated_labels"

const onConflictSkip = "ON CONFLICT (code) DO NOTHING"

var _ labels.Repository = (*Repo)(nil)

// Repo implements labels.Repository.
type Repo struct {
	*postgres.Table[labels.GeneratedLabel]
	chunkSize int
}

// New creates a new generated label repository.
func New(txm *postgres.TxManager) *Repo {
	return &Repo{
		Table:     postgres.NewTable[labels.GeneratedLabel](txm, tableName),
		chunkSize: postgres.DefaultChunkSize,
	}
}

func (r *Repo) InsertMany(ctx context.Context, items []*labels.GeneratedLabel) (int64, error) {
	cols := r.Cols()
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = postgres.StructValues(item, cols)
	}
	return postgres.BulkInsert(ctx, r.Querier(ctx), tableName, cols, rows, r.chunkSize, onConflictSkip)
}

func (r *Repo) GetByCode(ctx context.Context, code string) (*labels.GeneratedLabel, error) {
	return r.Get(ctx, r.Select().Where(squirrel.Eq{"code": code}), code)
}

func (r *Repo) Exists(ctx context.Context, code string) (bool, error) {
	return r.Table.Exists(ctx, squirrel.Eq{"code": code})
}

func (r *Repo) ListByBaseName(ctx context.Context, baseName string, limit int) ([]*labels.GeneratedLabel, error) {
	q := r.Select().
		Where(squirrel.Eq{"base_name": baseName}).
		OrderBy("sequence_number ASC").
		Limit(uint64(limit))
	return r.All(ctx, q)
}

// ExportQuery selects labels for export.
func (r *Repo) ExportQuery(f labels.ExportFilter) squirrel.SelectBuilder {
	q := r.Select()
	if f.BaseName != "" {
		q = q.Where(squirrel.Eq{"base_name": f.BaseName})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *f.To})
	}
	return q.OrderBy("base_name ASC", "sequence_number ASC")
}

func (r *Repo) Export(ctx context.Context, f labels.ExportFilter) ([]*labels.GeneratedLabel, error) {
	return r.All(ctx, r.ExportQuery(f))
}

// MarkPrintedSQL builds the update behind MarkPrinted.
func MarkPrintedSQL(codes []string, historyID id.ID, at time.Time) (string, []any, error) {
	return postgres.Builder().
		Update(tableName).
		Set("is_printed", true).
		Set("printed_at", at).
		Set("status", labels.StatusPrinted).
		Set("print_history_id", historyID).
		Set("print_count", squirrel.Expr("print_count + 1")).
		Set("updated_at", at).
		Where("code = ANY(?)", codes).
		ToSql()
}

func (r *Repo) MarkPrinted(ctx context.Context, codes []string, historyID id.ID, at time.Time) (int64, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	sql, args, err := MarkPrintedSQL(codes, historyID, at)
	if err != nil {
		return 0, fmt.Errorf("build mark printed: %w", err)
	}
	tag, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError("update", tableName, err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) Counts(ctx context.Context) (labels.Counts, error) {
	sql, args, err := postgres.Builder().
		Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_printed)").
		From(tableName).
		ToSql()
	if err != nil {
		return labels.Counts{}, fmt.Errorf("build counts: %w", err)
	}

	var c labels.Counts
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&c.Total, &c.Printed); err != nil {
		return labels.Counts{}, fmt.Errorf("count %s: %w", tableName, err)
	}
	return c, nil
}
