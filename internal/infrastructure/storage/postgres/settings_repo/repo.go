// Package settings_repo stores application settings as JSONB documents.
package settings_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"labelprint/internal/domain/settings"
	"labelprint/internal/infrastructure/storage/postgres"
)

const tableName = "app_settings"

var _ settings.Repository = (*Repo)(nil)

// Repo implements settings.Repository.
type Repo struct {
	txm *postgres.TxManager
}

// New creates a new settings repository.
func New(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

func (r *Repo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	sql, args, err := postgres.Builder().
		Select("value").
		From(tableName).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build settings query: %w", err)
	}

	var raw []byte
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}
	return raw, nil
}

// PutSQL builds the upsert behind Put.
func PutSQL(key string, value json.RawMessage) (string, []any, error) {
	return postgres.Builder().
		Insert(tableName).
		Columns("key", "value", "updated_at").
		Values(key, string(value), squirrel.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
}

func (r *Repo) Put(ctx context.Context, key string, value json.RawMessage) error {
	sql, args, err := PutSQL(key, value)
	if err != nil {
		return fmt.Errorf("build settings upsert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError("upsert", tableName, err)
	}
	return nil
}
