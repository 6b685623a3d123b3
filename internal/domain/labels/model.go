// Package labels tracks every code that was generated and whether it has
// been printed.
package labels

import (
	"time"

	"labelprint/internal/core/entity"
	"labelprint/internal/core/id"
	"labelprint/pkg/labelcmd"
	"labelprint/pkg/sequence"
)

// Status is the lifecycle state of a generated label.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusPrinted   Status = "printed"
	StatusError     Status = "error"
)

// GeneratedLabel is one persisted code. Code is unique across the store.
type GeneratedLabel struct {
	ID             id.ID              `db:"id" json:"id"`
	Code           string             `db:"code" json:"code"`
	CodeType       labelcmd.Symbology `db:"code_type" json:"codeType"`
	ConfigID       *id.ID             `db:"config_id" json:"configId,omitempty"`
	PrintHistoryID *id.ID             `db:"print_history_id" json:"printHistoryId,omitempty"`
	BaseName       string             `db:"base_name" json:"baseName"`
	SequenceNumber int64              `db:"sequence_number" json:"sequenceNumber"`
	IsPrinted      bool               `db:"is_printed" json:"isPrinted"`
	PrintedAt      *time.Time         `db:"printed_at" json:"printedAt,omitempty"`
	PrintCount     int                `db:"print_count" json:"printCount"`
	Status         Status             `db:"status" json:"status"`
	Metadata       entity.Attributes  `db:"metadata" json:"metadata,omitempty"`
	CreatedAt      time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `db:"updated_at" json:"updatedAt"`
}

// FromCodes builds one record per code. codes must come from p, in order.
func FromCodes(p sequence.Pattern, codes []string, sym labelcmd.Symbology, configID *id.ID, now time.Time) []*GeneratedLabel {
	out := make([]*GeneratedLabel, len(codes))
	for i, code := range codes {
		out[i] = &GeneratedLabel{
			ID:             id.New(),
			Code:           code,
			CodeType:       sym,
			ConfigID:       configID,
			BaseName:       p.String(),
			SequenceNumber: p.SequenceNumber(i),
			Status:         StatusGenerated,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}
	return out
}

// Verification answers whether a scanned code is known.
type Verification struct {
	Code    string          `json:"code"`
	Exists  bool            `json:"exists"`
	Message string          `json:"message"`
	Label   *GeneratedLabel `json:"label,omitempty"`
}

// Counts is used by the health endpoint.
type Counts struct {
	Total   int64 `json:"total"`
	Printed int64 `json:"printed"`
}
