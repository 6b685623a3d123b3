package settings_repo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSQL(t *testing.T) {
	sql, args, err := PutSQL("printer_settings", json.RawMessage(`{"baudRate":9600}`))
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO app_settings (key,value,updated_at) VALUES ($1,$2,now()) "+
			"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		sql)
	assert.Equal(t, []any{"printer_settings", `{"baudRate":9600}`}, args)
}
