package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versionedRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Owner   string `db:"owner"`
	Version int    `db:"version"`
}

func TestBulkInsertSQL(t *testing.T) {
	sql, args, err := BulkInsertSQL("generated_labels", []string{"id", "code"},
		[][]any{{"1", "A1"}, {"2", "A2"}}, "ON CONFLICT (code) DO NOTHING")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO generated_labels (id,code) VALUES ($1,$2),($3,$4) ON CONFLICT (code) DO NOTHING", sql)
	assert.Equal(t, []any{"1", "A1", "2", "A2"}, args)
}

func TestBulkInsertSQL_RowWidthMismatch(t *testing.T) {
	_, _, err := BulkInsertSQL("t", []string{"a", "b"}, [][]any{{1}}, "")
	assert.Error(t, err)
}

func TestTable_InsertSQL(t *testing.T) {
	tbl := NewTable[versionedRow](nil, "things")
	sql, args, err := tbl.InsertSQL(&versionedRow{ID: "x", Name: "n", Owner: "o", Version: 1})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO things (id,name,owner,version) VALUES ($1,$2,$3,$4)", sql)
	assert.Equal(t, []any{"x", "n", "o", 1}, args)
}

func TestTable_UpdateVersionedSQL(t *testing.T) {
	tbl := NewTable[versionedRow](nil, "things")
	sql, args, err := tbl.UpdateVersionedSQL(&versionedRow{ID: "x", Name: "n", Owner: "o", Version: 4}, "owner")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE things SET name = $1, version = version + 1 WHERE id = $2 AND version = $3", sql)
	assert.Equal(t, []any{"n", "x", 4}, args)
}

func TestTable_Select(t *testing.T) {
	tbl := NewTable[versionedRow](nil, "things")
	sql, _, err := tbl.Select().Where(squirrel.Eq{"id": "x"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, owner, version FROM things WHERE id = $1", sql)
}

func TestCountSQL(t *testing.T) {
	q := Builder().Select("id").From("things").Where(squirrel.Eq{"owner": "o"})
	sql, args, err := CountSQL(q)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM (SELECT id FROM things WHERE owner = $1) AS sub", sql)
	assert.Equal(t, []any{"o"}, args)
}
