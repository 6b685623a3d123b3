// Package sequence expands a base pattern such as "PA00001" into an ordered
// run of zero-padded codes.
//
// A pattern is a non-empty prefix followed by a trailing run of ASCII digits.
// The digit run fixes the starting number and the minimum width of every
// generated suffix. Widths only grow: "X99" followed by one more code is "X100".
package sequence

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a pattern has no trailing digit run.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrNegativeQuantity is returned for quantity < 0.
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrOverflow is returned when the last code would not fit in int64.
	ErrOverflow = errors.New("sequence overflows int64")
)

// patternRe splits at the last maximal digit run: lazy prefix, greedy digits.
var patternRe = regexp.MustCompile(`^(.+?)(\d+)$`)

// PatternError describes a rejected base pattern.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidPattern) succeed.
func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// Pattern is a parsed base pattern.
type Pattern struct {
	Prefix string
	Digits string // trailing digits as written
	Start  int64
	Width  int
}

// Parse decomposes a base pattern into prefix and numeric suffix.
func Parse(pattern string) (Pattern, error) {
	m := patternRe.FindStringSubmatch(pattern)
	if m == nil {
		return Pattern{}, &PatternError{Pattern: pattern, Reason: "must end with a number"}
	}

	start, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Pattern{}, &PatternError{Pattern: pattern, Reason: "numeric suffix is too large"}
	}

	return Pattern{
		Prefix: m[1],
		Digits: m[2],
		Start:  start,
		Width:  len(m[2]),
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(pattern string) Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether pattern can be used as a base pattern.
func Validate(pattern string) error {
	_, err := Parse(pattern)
	return err
}

// String returns the pattern as originally written.
func (p Pattern) String() string {
	return p.Prefix + p.Digits
}

// SequenceNumber returns the numeric value at offset.
func (p Pattern) SequenceNumber(offset int) int64 {
	return p.Start + int64(offset)
}

// Code renders the code at offset. Padding is a minimum width, never a truncation.
func (p Pattern) Code(offset int) string {
	return p.Prefix + pad(p.SequenceNumber(offset), p.Width)
}

// Generate returns quantity codes starting at offset zero.
func (p Pattern) Generate(quantity int) ([]string, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if quantity > 0 && p.Start > math.MaxInt64-int64(quantity-1) {
		return nil, fmt.Errorf("%w: start %d, quantity %d", ErrOverflow, p.Start, quantity)
	}

	codes := make([]string, 0, quantity)
	for offset := 0; offset < quantity; offset++ {
		codes = append(codes, p.Code(offset))
	}
	return codes, nil
}

// Number extracts the sequence number from a code produced by this pattern.
// ok is false when code does not carry the prefix followed only by digits.
func (p Pattern) Number(code string) (n int64, ok bool) {
	rest, found := strings.CutPrefix(code, p.Prefix)
	if !found || rest == "" {
		return 0, false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Matches reports whether code belongs to the sequence of p.
func (p Pattern) Matches(code string) bool {
	_, ok := p.Number(code)
	return ok
}

// Generate expands basePattern into quantity codes.
// quantity == 0 yields an empty, non-nil slice.
func Generate(basePattern string, quantity int) ([]string, error) {
	p, err := Parse(basePattern)
	if err != nil {
		return nil, err
	}
	return p.Generate(quantity)
}

func pad(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
