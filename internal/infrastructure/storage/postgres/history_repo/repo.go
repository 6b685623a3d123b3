// Package history_repo persists print jobs.
package history_repo

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"labelprint/internal/core/id"
	"labelprint/internal/domain"
	"labelprint/internal/domain/printhistory"
	"labelprint/internal/infrastructure/storage/postgres"
)

const tableName = "print_history"

var _ printhistory.Repository = (*Repo)(nil)

// Repo implements printhistory.Repository.
type Repo struct {
	*postgres.Table[printhistory.PrintHistory]
}

// New creates a new print history repository.
func New(txm *postgres.TxManager) *Repo {
	return &Repo{Table: postgres.NewTable[printhistory.PrintHistory](txm, tableName)}
}

func (r *Repo) Create(ctx context.Context, h *printhistory.PrintHistory) error {
	return r.Insert(ctx, h)
}

func (r *Repo) GetByID(ctx context.Context, historyID id.ID) (*printhistory.PrintHistory, error) {
	return r.Table.GetByID(ctx, historyID)
}

// ListQuery is the filtered, unordered selection of List.
func (r *Repo) ListQuery(f printhistory.Filter) squirrel.SelectBuilder {
	q := r.Select()
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": f.Status})
	}
	if f.ConnectionType != "" {
		q = q.Where(squirrel.Eq{"connection_type": f.ConnectionType})
	}
	if f.BaseName != "" {
		q = q.Where(squirrel.ILike{"base_name": "%" + escapeLike(f.BaseName) + "%"})
	}
	return applyRange(q, f.TimeRange)
}

func (r *Repo) List(ctx context.Context, f printhistory.Filter) (domain.ListResult[*printhistory.PrintHistory], error) {
	return r.Page(ctx, r.ListQuery(f), "created_at DESC", f.Page)
}

func (r *Repo) Delete(ctx context.Context, historyID id.ID) error {
	return r.DeleteByID(ctx, historyID)
}

func (r *Repo) DeleteByIDs(ctx context.Context, ids []id.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.DeleteWhere(ctx, squirrel.Eq{"id": ids})
}

func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.DeleteWhere(ctx, squirrel.Lt{"created_at": cutoff})
}

func applyRange(q squirrel.SelectBuilder, tr domain.TimeRange) squirrel.SelectBuilder {
	if tr.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *tr.From})
	}
	if tr.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *tr.To})
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
