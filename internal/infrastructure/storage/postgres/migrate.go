package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"labelprint/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one embedded schema change.
type Migration struct {
	ID       string
	Checksum string
	SQL      string
}

// MigrationStatus reports whether a migration has been applied.
type MigrationStatus struct {
	ID          string     `db:"migration_id" json:"id"`
	Checksum    string     `db:"checksum" json:"checksum"`
	Applied     bool       `db:"-" json:"applied"`
	AppliedAt   *time.Time `db:"applied_at" json:"appliedAt,omitempty"`
	ExecutionMS int64      `db:"execution_ms" json:"executionMs"`
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    migration_id  TEXT PRIMARY KEY,
    checksum      TEXT        NOT NULL,
    applied_at    TIMESTAMPTZ NOT NULL,
    execution_ms  BIGINT      NOT NULL
)`

// Migrations returns the embedded migrations ordered by file name.
func Migrations() ([]Migration, error) {
	return parseMigrations(migrationsFS, "migrations")
}

func parseMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	var out []Migration
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sql") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		out = append(out, Migration{
			ID:       path.Base(p),
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
			SQL:      string(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Migrate applies pending migrations, each in its own transaction. An
// applied migration whose checksum changed aborts the run.
func Migrate(ctx context.Context, pool *Pool) error {
	migrations, err := Migrations()
	if err != nil {
		return fmt.Errorf("parse migrations: %w", err)
	}

	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedChecksums(ctx, pool)
	if err != nil {
		return err
	}
	if err := verifyChecksums(migrations, applied); err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.ID]; ok {
			continue
		}

		start := time.Now()
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			// pgx runs a multi-statement string in one simple-protocol Exec
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx,
				"INSERT INTO schema_migrations (migration_id, checksum, applied_at, execution_ms) VALUES ($1, $2, $3, $4)",
				m.ID, m.Checksum, time.Now().UTC(), time.Since(start).Milliseconds())
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.ID, err)
		}
		logger.Info(ctx, "migration applied", "id", m.ID, "duration_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// MigrationStatuses lists every embedded migration with its applied state.
func MigrationStatuses(ctx context.Context, pool *Pool) ([]MigrationStatus, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, fmt.Errorf("parse migrations: %w", err)
	}
	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := pool.Query(ctx, "SELECT migration_id, checksum, applied_at, execution_ms FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[MigrationStatus])
	if err != nil {
		return nil, fmt.Errorf("scan schema_migrations: %w", err)
	}
	byID := make(map[string]MigrationStatus, len(applied))
	for _, s := range applied {
		s.Applied = true
		byID[s.ID] = s
	}

	out := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		if s, ok := byID[m.ID]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, MigrationStatus{ID: m.ID, Checksum: m.Checksum})
	}
	return out, nil
}

func appliedChecksums(ctx context.Context, pool *Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, "SELECT migration_id, checksum FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var migrationID, checksum string
		if err := rows.Scan(&migrationID, &checksum); err != nil {
			return nil, err
		}
		out[migrationID] = checksum
	}
	return out, rows.Err()
}

func verifyChecksums(migrations []Migration, applied map[string]string) error {
	known := make(map[string]string, len(migrations))
	for _, m := range migrations {
		known[m.ID] = m.Checksum
	}
	for migrationID, checksum := range applied {
		want, ok := known[migrationID]
		if !ok {
			return fmt.Errorf("migration %s is applied but not embedded", migrationID)
		}
		if want != checksum {
			return fmt.Errorf("checksum mismatch for migration %s", migrationID)
		}
	}
	return nil
}
