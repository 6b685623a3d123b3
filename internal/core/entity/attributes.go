// Package entity provides value types shared by persisted records.
package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
)

// Attributes is a JSONB object attached to a record: label metadata or the
// device a job was sent to. Numbers decode as json.Number.
type Attributes map[string]any

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("attributes: cannot scan %T", src)
	}
	if len(raw) == 0 {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	*a = m
	return nil
}

// Value implements driver.Valuer. Nil is stored as {}.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(a))
}

// With returns a copy of a with key set. a itself is not modified.
func (a Attributes) With(key string, value any) Attributes {
	out := make(Attributes, len(a)+1)
	maps.Copy(out, a)
	out[key] = value
	return out
}

// String returns the string stored under key.
func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}
