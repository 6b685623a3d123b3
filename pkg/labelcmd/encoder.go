package labelcmd

import "fmt"

// Option configures an Encoder.
type Option func(*Encoder)

// WithBorder toggles the cosmetic frame drawn inside the label edges.
func WithBorder(on bool) Option {
	return func(e *Encoder) {
		e.border = on
	}
}

// Encoder renders documents for a single dialect. It holds no mutable state
// and is safe for concurrent use.
type Encoder struct {
	dialect Dialect
	profile *profile
	border  bool
}

// NewEncoder returns an encoder for dialect d. The border is on by default.
func NewEncoder(d Dialect, opts ...Option) (*Encoder, error) {
	p, ok := profiles[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, d)
	}
	e := &Encoder{dialect: d, profile: p, border: true}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dialect returns the encoder's dialect.
func (e *Encoder) Dialect() Dialect {
	return e.dialect
}

// Encode renders one label. The code is embedded verbatim.
func (e *Encoder) Encode(code string, sym Symbology) (Document, error) {
	r, ok := e.profile.rows[sym]
	if !ok {
		return Document{}, &UnsupportedSymbologyError{Symbology: sym}
	}

	p := e.profile
	lines := make([]Line, 0, len(p.setup)+5)
	for _, s := range p.setup {
		lines = append(lines, Line{Kind: KindSetup, Text: s})
	}
	lines = append(lines, Line{Kind: KindClear, Text: p.clear})
	if e.border {
		lines = append(lines, Line{Kind: KindBorder, Text: p.border})
	}
	lines = append(lines, Line{Kind: KindSymbol, Text: p.render(r.symbol, code)})
	if r.text != "" {
		lines = append(lines, Line{Kind: KindText, Text: p.render(r.text, code)})
	}
	lines = append(lines, Line{Kind: KindCommit, Text: p.commit})

	return Document{
		Dialect:    e.dialect,
		Symbology:  sym,
		Code:       code,
		Lines:      lines,
		terminator: p.terminator,
	}, nil
}

// EncodeBatch renders one document per code, in order. Nothing is returned
// unless every code was encoded.
func (e *Encoder) EncodeBatch(codes []string, sym Symbology) (Batch, error) {
	if _, ok := e.profile.rows[sym]; !ok {
		return Batch{}, &UnsupportedSymbologyError{Symbology: sym}
	}

	docs := make([]Document, 0, len(codes))
	for _, code := range codes {
		doc, err := e.Encode(code, sym)
		if err != nil {
			return Batch{}, err
		}
		docs = append(docs, doc)
	}
	return Batch{Dialect: e.dialect, Documents: docs}, nil
}

// Encode renders one label with default options.
func Encode(code string, sym Symbology, d Dialect) (Document, error) {
	e, err := NewEncoder(d)
	if err != nil {
		return Document{}, err
	}
	return e.Encode(code, sym)
}

// EncodeBatch renders codes with default options.
func EncodeBatch(codes []string, sym Symbology, d Dialect) (Batch, error) {
	e, err := NewEncoder(d)
	if err != nil {
		return Batch{}, err
	}
	return e.EncodeBatch(codes, sym)
}
