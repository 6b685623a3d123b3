package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"labelprint/internal/core/apperror"
	"labelprint/internal/domain"
)

// Table provides the common CRUD statements for one table whose rows scan
// into T. Repositories embed it and add their own queries.
type Table[T any] struct {
	txm  *TxManager
	name string
	cols []string
}

// NewTable derives the column list from T's "db" tags.
func NewTable[T any](txm *TxManager, name string) *Table[T] {
	return &Table[T]{txm: txm, name: name, cols: Columns[T]()}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// Cols returns the selected columns.
func (t *Table[T]) Cols() []string { return t.cols }

// Querier returns the transaction in ctx, or the pool.
func (t *Table[T]) Querier(ctx context.Context) Querier {
	return t.txm.GetQuerier(ctx)
}

// Select starts a SELECT of every column.
func (t *Table[T]) Select() squirrel.SelectBuilder {
	return Builder().Select(t.cols...).From(t.name)
}

// InsertSQL builds an INSERT of every tagged column of entity.
func (t *Table[T]) InsertSQL(entity *T) (string, []any, error) {
	data := StructToMap(entity)
	if len(data) == 0 {
		return "", nil, fmt.Errorf("no db tags found in %T", entity)
	}
	return Builder().Insert(t.name).SetMap(data).ToSql()
}

// Insert writes entity.
func (t *Table[T]) Insert(ctx context.Context, entity *T) error {
	sql, args, err := t.InsertSQL(entity)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := t.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError("insert", t.name, err)
	}
	return nil
}

// UpdateVersionedSQL builds an UPDATE guarded by the "version" column. The
// immutable columns are left out of SET.
func (t *Table[T]) UpdateVersionedSQL(entity *T, immutable ...string) (string, []any, error) {
	data := StructToMap(entity)
	entityID, ok := data["id"]
	if !ok {
		return "", nil, fmt.Errorf("%T has no id column", entity)
	}
	version, ok := data["version"].(int)
	if !ok {
		return "", nil, fmt.Errorf("%T has no int version column", entity)
	}

	skip := map[string]bool{"id": true, "version": true}
	for _, c := range immutable {
		skip[c] = true
	}
	set := make(map[string]any, len(data))
	for col, val := range data {
		if !skip[col] {
			set[col] = val
		}
	}

	return Builder().
		Update(t.name).
		SetMap(set).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
}

// UpdateVersioned applies UpdateVersionedSQL. A stale version is reported
// as a concurrent modification.
func (t *Table[T]) UpdateVersioned(ctx context.Context, entity *T, immutable ...string) error {
	sql, args, err := t.UpdateVersionedSQL(entity, immutable...)
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := t.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return MapError("update", t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(t.name, StructToMap(entity)["id"])
	}
	return nil
}

// Get scans the first row of q. key is reported when nothing matches.
func (t *Table[T]) Get(ctx context.Context, q squirrel.SelectBuilder, key any) (*T, error) {
	sql, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	out := new(T)
	if err := pgxscan.Get(ctx, t.Querier(ctx), out, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(t.name, key)
		}
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	return out, nil
}

// GetByID returns the row with the given id.
func (t *Table[T]) GetByID(ctx context.Context, entityID any) (*T, error) {
	return t.Get(ctx, t.Select().Where(squirrel.Eq{"id": entityID}), entityID)
}

// All scans every row of q.
func (t *Table[T]) All(ctx context.Context, q squirrel.SelectBuilder) ([]*T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*T
	if err := pgxscan.Select(ctx, t.Querier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	return out, nil
}

// CountSQL wraps q in a COUNT(*) subquery.
func CountSQL(q squirrel.SelectBuilder) (string, []any, error) {
	return Builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
}

// Page counts q, then returns one page of it in orderBy order.
func (t *Table[T]) Page(ctx context.Context, q squirrel.SelectBuilder, orderBy string, p domain.Page) (domain.ListResult[*T], error) {
	countSQL, countArgs, err := CountSQL(q)
	if err != nil {
		return domain.ListResult[*T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := t.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.ListResult[*T]{}, fmt.Errorf("count %s: %w", t.name, err)
	}

	q = q.OrderBy(orderBy).Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	items, err := t.All(ctx, q)
	if err != nil {
		return domain.ListResult[*T]{}, err
	}
	return domain.NewListResult(items, total, p), nil
}

// DeleteByID removes one row; a missing row is NOT_FOUND.
func (t *Table[T]) DeleteByID(ctx context.Context, entityID any) error {
	n, err := t.DeleteWhere(ctx, squirrel.Eq{"id": entityID})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NewNotFound(t.name, entityID)
	}
	return nil
}

// DeleteWhere removes every row matching pred.
func (t *Table[T]) DeleteWhere(ctx context.Context, pred squirrel.Sqlizer) (int64, error) {
	sql, args, err := Builder().Delete(t.name).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := t.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, MapError("delete", t.name, err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows.
func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	sql, args, err := Builder().Select("COUNT(*)").From(t.name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := t.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

// Exists reports whether any row matches pred.
func (t *Table[T]) Exists(ctx context.Context, pred squirrel.Sqlizer) (bool, error) {
	sql, args, err := Builder().Select("1").From(t.name).Where(pred).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists: %w", err)
	}
	var one int
	err = t.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", t.name, err)
	}
	return true, nil
}
