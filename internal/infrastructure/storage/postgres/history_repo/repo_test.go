package history_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/domain"
	"labelprint/internal/domain/printhistory"
)

const selectCols = "id, config_id, base_name, quantity, code_type, dialect, generated_codes, connection_type, " +
	"printer_name, status, printed_count, error_message, duration_ms, device_info, file_key, printed_by, created_at"

func TestRepo_ListQuery(t *testing.T) {
	r := New(nil)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		filter   printhistory.Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			wantSQL: "SELECT " + selectCols + " FROM print_history",
		},
		{
			name: "all filters",
			filter: printhistory.Filter{
				Status:         printhistory.StatusFailed,
				ConnectionType: printhistory.ConnectionUSB,
				BaseName:       "lbl",
				TimeRange:      domain.TimeRange{From: &from, To: &to},
			},
			wantSQL: "SELECT " + selectCols + " FROM print_history WHERE status = $1 AND connection_type = $2 " +
				"AND base_name ILIKE $3 AND created_at >= $4 AND created_at <= $5",
			wantArgs: []any{printhistory.StatusFailed, printhistory.ConnectionUSB, "%lbl%", from, to},
		},
		{
			name:     "base name wildcards are literal",
			filter:   printhistory.Filter{BaseName: "50%_off"},
			wantSQL:  "SELECT " + selectCols + " FROM print_history WHERE base_name ILIKE $1",
			wantArgs: []any{`%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := r.ListQuery(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}
