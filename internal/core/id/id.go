// Package id generates and parses record identifiers.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID identifies configurations, labels and print jobs.
type ID = uuid.UUID

// Nil is the zero ID.
var Nil = uuid.Nil

// New returns a UUIDv7, so ids of one table sort by creation time. It falls
// back to a random v4 when the clock source fails.
func New() ID {
	if v, err := uuid.NewV7(); err == nil {
		return v
	}
	return uuid.New()
}

// Parse accepts the canonical textual form; surrounding blanks are ignored.
func Parse(s string) (ID, error) {
	v, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return v, nil
}

// ParseOptional is Parse for optional references: nil or blank input yields nil.
func ParseOptional(s *string) (*ID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := Parse(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) ID {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func IsNil(v ID) bool {
	return v == Nil
}
