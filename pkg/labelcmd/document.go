package labelcmd

import (
	"bytes"
	"slices"
	"strings"
)

// Kind classifies a command line within a document.
type Kind int

const (
	KindSetup Kind = iota
	KindClear
	KindBorder
	KindSymbol
	KindText
	KindCommit
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindClear:
		return "clear"
	case KindBorder:
		return "border"
	case KindSymbol:
		return "symbol"
	case KindText:
		return "text"
	case KindCommit:
		return "commit"
	}
	return "unknown"
}

// Line is a single command without its terminator.
type Line struct {
	Kind Kind
	Text string
}

// Document is the complete command output for one label. Callers must treat
// Lines as read-only; use LinesCopy to get a slice that may be changed.
type Document struct {
	Dialect   Dialect
	Symbology Symbology
	Code      string
	Lines     []Line

	terminator string
}

// LinesCopy returns a copy of the command lines.
func (d Document) LinesCopy() []Line {
	return slices.Clone(d.Lines)
}

// HasUnsafeData reports whether the code contains a character the dialect
// reserves. Such a document prints wrong field data; see CheckData.
func (d Document) HasUnsafeData() bool {
	return CheckData(d.Dialect, d.Code) != nil
}

// String renders every line followed by the dialect terminator.
func (d Document) String() string {
	var sb strings.Builder
	d.writeTo(&sb)
	return sb.String()
}

// Bytes is String as a byte slice, ready for a printer connection.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	d.writeTo(&buf)
	return buf.Bytes()
}

// Terminator returns the line terminator of the document's dialect.
func (d Document) Terminator() string {
	return d.terminator
}

// Index returns the position of the first line of kind k, or -1.
func (d Document) Index(k Kind) int {
	for i, l := range d.Lines {
		if l.Kind == k {
			return i
		}
	}
	return -1
}

// Count returns how many lines have kind k.
func (d Document) Count(k Kind) int {
	n := 0
	for _, l := range d.Lines {
		if l.Kind == k {
			n++
		}
	}
	return n
}

type stringWriter interface {
	WriteString(s string) (int, error)
}

func (d Document) writeTo(w stringWriter) {
	for _, l := range d.Lines {
		_, _ = w.WriteString(l.Text)
		_, _ = w.WriteString(d.terminator)
	}
}

// Batch is an ordered run of documents of the same dialect.
type Batch struct {
	Dialect   Dialect
	Documents []Document
}

// Len returns the number of documents.
func (b Batch) Len() int {
	return len(b.Documents)
}

// Codes returns the encoded codes in document order.
func (b Batch) Codes() []string {
	codes := make([]string, len(b.Documents))
	for i, d := range b.Documents {
		codes[i] = d.Code
	}
	return codes
}

// Bytes concatenates the documents, separated by one blank line.
func (b Batch) Bytes() []byte {
	var buf bytes.Buffer
	for i, d := range b.Documents {
		if i > 0 {
			buf.WriteString(d.terminator)
		}
		d.writeTo(&buf)
	}
	return buf.Bytes()
}

// String is Bytes as a string.
func (b Batch) String() string {
	return string(b.Bytes())
}
