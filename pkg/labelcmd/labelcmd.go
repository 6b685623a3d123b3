// Package labelcmd renders label codes into printer command documents.
//
// Two command languages are supported: TSPL (TSC and compatible printers) and
// ZPL (Zebra and compatible printers). Each (dialect, symbology) pair is a
// fixed row of literal layout constants tuned for a 50 x 50 mm label; nothing
// is computed from the label size.
package labelcmd

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect is a printer command language.
type Dialect string

const (
	DialectTSPL Dialect = "tspl"
	DialectZPL  Dialect = "zpl"
)

// Dialects lists supported dialects in display order.
var Dialects = []Dialect{DialectTSPL, DialectZPL}

// Symbology is the visual encoding of a code.
type Symbology string

const (
	Barcode    Symbology = "barcode" // Code 128
	QRCode     Symbology = "qrcode"
	DataMatrix Symbology = "datamatrix"
)

// Symbologies lists supported symbologies in display order.
var Symbologies = []Symbology{Barcode, QRCode, DataMatrix}

var (
	// ErrUnsupportedSymbology is matched by *UnsupportedSymbologyError.
	ErrUnsupportedSymbology = errors.New("unsupported symbology")

	// ErrUnsupportedDialect is returned for an unknown dialect.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrUnsafeData is matched by *UnsafeDataError.
	ErrUnsafeData = errors.New("data contains reserved characters")
)

// UnsupportedSymbologyError names the rejected symbology.
type UnsupportedSymbologyError struct {
	Symbology Symbology
}

func (e *UnsupportedSymbologyError) Error() string {
	return fmt.Sprintf("unsupported symbology %q", string(e.Symbology))
}

func (e *UnsupportedSymbologyError) Is(target error) bool {
	return target == ErrUnsupportedSymbology
}

// UnsafeDataError reports a code that would break the dialect's field quoting.
// The encoder never escapes; callers decide whether to refuse such codes.
type UnsafeDataError struct {
	Dialect Dialect
	Data    string
	Char    rune
}

func (e *UnsafeDataError) Error() string {
	return fmt.Sprintf("%s: %q contains reserved character %q", e.Dialect, e.Data, e.Char)
}

func (e *UnsafeDataError) Is(target error) bool {
	return target == ErrUnsafeData
}

// ParseDialect accepts "tspl"/"a" and "zpl"/"b", case-insensitive.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tspl", "a":
		return DialectTSPL, nil
	case "zpl", "b":
		return DialectZPL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, s)
}

// ParseSymbology accepts the canonical names, case-insensitive.
func ParseSymbology(s string) (Symbology, error) {
	sym := Symbology(strings.ToLower(strings.TrimSpace(s)))
	if !sym.Valid() {
		return "", &UnsupportedSymbologyError{Symbology: Symbology(s)}
	}
	return sym, nil
}

// Valid reports whether s is one of the supported symbologies.
func (s Symbology) Valid() bool {
	switch s {
	case Barcode, QRCode, DataMatrix:
		return true
	}
	return false
}

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	_, ok := profiles[d]
	return ok
}

// FileExtension is the conventional extension for command files.
func (d Dialect) FileExtension() string {
	if d == DialectZPL {
		return ".zpl"
	}
	return ".prn"
}

// CheckData reports whether code can be embedded in dialect d without
// corrupting the document.
func CheckData(d Dialect, code string) error {
	p, ok := profiles[d]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, d)
	}
	if i := strings.IndexAny(code, p.reserved); i >= 0 {
		return &UnsafeDataError{Dialect: d, Data: code, Char: rune(code[i])}
	}
	return nil
}
