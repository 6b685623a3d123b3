package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// DefaultChunkSize bounds the rows of a single multi-row INSERT so the
// statement stays under the 65535 parameter limit for wide tables.
const DefaultChunkSize = 500

// BulkInsert inserts rows as multi-row INSERT statements of at most
// chunkSize rows. suffix is appended verbatim to every statement, e.g.
// "ON CONFLICT (code) DO NOTHING". It returns the number of rows written.
func BulkInsert(ctx context.Context, q Querier, table string, cols []string, rows [][]any, chunkSize int, suffix string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var total int64
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))

		sql, args, err := BulkInsertSQL(table, cols, rows[start:end], suffix)
		if err != nil {
			return total, err
		}
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return total, MapError("insert", table, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

// BulkInsertSQL builds one multi-row INSERT.
func BulkInsertSQL(table string, cols []string, rows [][]any, suffix string) (string, []any, error) {
	ins := Builder().Insert(table).Columns(cols...)
	for _, row := range rows {
		if len(row) != len(cols) {
			return "", nil, fmt.Errorf("bulk insert %s: row has %d values, want %d", table, len(row), len(cols))
		}
		ins = ins.Values(row...)
	}
	if suffix != "" {
		ins = ins.Suffix(suffix)
	}

	sql, args, err := ins.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build bulk insert: %w", err)
	}
	return sql, args, nil
}

// Builder returns a squirrel builder with PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
