package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"labelprint/internal/core/apperror"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// MapError turns constraint violations into AppErrors and wraps anything
// else with op.
func MapError(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(table, pgErr.ConstraintName, pgErr.Detail).WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict("referenced by other records").
				WithDetail("entity", table).
				WithCause(err)
		}
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}
