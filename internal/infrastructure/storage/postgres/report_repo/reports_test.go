package report_repo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/domain"
)

func TestTotalsQuery(t *testing.T) {
	sql, args, err := TotalsQuery(domain.TimeRange{}).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, "FROM print_history"), sql)
	assert.Contains(t, sql, "COALESCE(SUM(quantity), 0) AS total_labels")
	assert.Contains(t, sql, "COUNT(*) FILTER (WHERE connection_type = 'download') AS downloads")
	assert.Empty(t, args)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err = TotalsQuery(domain.TimeRange{From: &from}).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sql, "FROM print_history WHERE created_at >= $1"), sql)
	assert.Equal(t, []any{from}, args)
}

func TestDailyQuery(t *testing.T) {
	since := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	sql, args, err := DailyQuery(since).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date, COUNT(*) AS total_prints, "+
			"COALESCE(SUM(quantity), 0) AS total_labels, COUNT(*) FILTER (WHERE status = 'success') AS successful_prints, "+
			"COUNT(*) FILTER (WHERE status = 'failed') AS failed_prints FROM print_history WHERE created_at >= $1 "+
			"GROUP BY to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') ORDER BY date ASC",
		sql)
	assert.Equal(t, []any{since}, args)
}

func TestTopLabelsQuery(t *testing.T) {
	sql, _, err := TopLabelsQuery(10).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT base_name, COUNT(*) AS total_prints, COALESCE(SUM(quantity), 0) AS total_quantity, "+
			"MAX(created_at) AS last_printed FROM print_history GROUP BY base_name "+
			"ORDER BY total_quantity DESC, base_name ASC LIMIT 10",
		sql)
}
