package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	assert.Equal(t, "0001_init.sql", ms[0].ID)
	assert.Len(t, ms[0].Checksum, 64)
	for _, table := range []string{"label_configs", "generated_labels", "print_history", "app_settings"} {
		assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestParseMigrations_Order(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("SELECT 2")},
		"m/0001_a.sql": {Data: []byte("SELECT 1")},
		"m/README.txt": {Data: []byte("ignored")},
		"m/0010_c.sql": {Data: []byte("SELECT 10")},
	}
	ms, err := parseMigrations(fsys, "m")
	require.NoError(t, err)

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql", "0010_c.sql"}, ids)
}

func TestVerifyChecksums(t *testing.T) {
	ms := []Migration{{ID: "0001_a.sql", Checksum: "abc"}}

	assert.NoError(t, verifyChecksums(ms, map[string]string{"0001_a.sql": "abc"}))
	assert.NoError(t, verifyChecksums(ms, map[string]string{}))
	assert.Error(t, verifyChecksums(ms, map[string]string{"0001_a.sql": "def"}))
	assert.Error(t, verifyChecksums(ms, map[string]string{"0009_gone.sql": "abc"}))
}
