package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"labelprint/internal/core/id"
)

type auditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type sampleRow struct {
	ID      id.ID  `db:"id"`
	Code    string `db:"code"`
	Ignored string `db:"-"`
	NoTag   string
	Version int `db:"version"`
	auditFields
}

func TestColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "code", "version", "created_at", "updated_at"},
		Columns[sampleRow]())
	assert.Equal(t, Columns[sampleRow](), Columns[*sampleRow]())
}

func TestStructToMap(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	row := &sampleRow{
		ID:          id.New(),
		Code:        "LBL001",
		Ignored:     "x",
		Version:     3,
		auditFields: auditFields{CreatedAt: now, UpdatedAt: now},
	}

	m := StructToMap(row)
	assert.Len(t, m, 5)
	assert.Equal(t, row.ID, m["id"])
	assert.Equal(t, "LBL001", m["code"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.NotContains(t, m, "Ignored")

	assert.Nil(t, StructToMap((*sampleRow)(nil)))
	assert.Nil(t, StructToMap(42))
}

func TestStructValues(t *testing.T) {
	row := sampleRow{Code: "A1", Version: 1}
	assert.Equal(t, []any{"A1", 1, nil}, StructValues(row, []string{"code", "version", "missing"}))
}
