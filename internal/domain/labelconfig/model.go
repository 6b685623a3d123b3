// Package labelconfig manages saved label sequence configurations.
package labelconfig

import (
	"strings"
	"time"

	"labelprint/internal/core/apperror"
	"labelprint/internal/core/id"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/sequence"
)

// Default label geometry in millimetres.
const (
	DefaultLabelWidth  = 50
	DefaultLabelHeight = 50
)

// LabelConfig is a saved base pattern plus print preferences.
type LabelConfig struct {
	ID          id.ID              `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	BaseName    string             `db:"base_name" json:"baseName"`
	StartNumber int64              `db:"start_number" json:"startNumber"`
	Quantity    int                `db:"quantity" json:"quantity"`
	CodeType    labelcmd.Symbology `db:"code_type" json:"codeType"`
	LabelWidth  int                `db:"label_width" json:"labelWidth"`
	LabelHeight int                `db:"label_height" json:"labelHeight"`
	IsTemplate  bool               `db:"is_template" json:"isTemplate"`
	CreatedBy   string             `db:"created_by" json:"createdBy"`
	LastUsed    time.Time          `db:"last_used" json:"lastUsed"`
	Version     int                `db:"version" json:"version"`
	CreatedAt   time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updatedAt"`
}

// New builds a config from a base name, deriving the start number.
// Empty name and code type fall back to defaults.
func New(name, baseName string, quantity int, codeType labelcmd.Symbology, createdBy string, now time.Time) (*LabelConfig, error) {
	baseName = strings.TrimSpace(baseName)
	p, err := sequence.Parse(baseName)
	if err != nil {
		return nil, apperror.NewInvalidPattern(baseName).WithCause(err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Config-" + baseName
	}
	if codeType == "" {
		codeType = labelcmd.Barcode
	}

	return &LabelConfig{
		ID:          id.New(),
		Name:        strings.TrimSpace(name),
		BaseName:    baseName,
		StartNumber: p.Start,
		Quantity:    quantity,
		CodeType:    codeType,
		LabelWidth:  DefaultLabelWidth,
		LabelHeight: DefaultLabelHeight,
		CreatedBy:   createdBy,
		LastUsed:    now,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Validate checks field invariants. maxQuantity is the configured upper bound.
func (c *LabelConfig) Validate(maxQuantity int) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required")
	}
	if len(c.Name) > 200 {
		return apperror.NewValidation("name is too long").WithDetail("max", 200)
	}
	if _, err := sequence.Parse(c.BaseName); err != nil {
		return apperror.NewInvalidPattern(c.BaseName).WithCause(err)
	}
	if c.Quantity < 1 || c.Quantity > maxQuantity {
		return apperror.NewValidation("quantity out of range").
			WithDetail("min", 1).
			WithDetail("max", maxQuantity).
			WithDetail("quantity", c.Quantity)
	}
	if !c.CodeType.Valid() {
		return apperror.NewUnsupportedSymbology(string(c.CodeType))
	}
	if c.LabelWidth <= 0 || c.LabelHeight <= 0 {
		return apperror.NewValidation("label size must be positive")
	}
	return nil
}

// Pattern parses the config's base name.
func (c *LabelConfig) Pattern() (sequence.Pattern, error) {
	return sequence.Parse(c.BaseName)
}

// GenerateCodes expands the base name into Quantity codes.
func (c *LabelConfig) GenerateCodes() ([]string, error) {
	p, err := c.Pattern()
	if err != nil {
		return nil, apperror.NewInvalidPattern(c.BaseName).WithCause(err)
	}
	return p.Generate(c.Quantity)
}
