package dto

import (
	"labelprint/internal/domain/labelconfig"
)

// CreateConfigRequest is the body of POST /configs.
type CreateConfigRequest struct {
	Name        string `json:"name"`
	BaseName    string `json:"baseName" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	CodeType    string `json:"codeType"`
	LabelWidth  int    `json:"labelWidth"`
	LabelHeight int    `json:"labelHeight"`
	IsTemplate  bool   `json:"isTemplate"`
}

func (r CreateConfigRequest) ToInput() labelconfig.CreateInput {
	return labelconfig.CreateInput{
		Name:        r.Name,
		BaseName:    r.BaseName,
		Quantity:    r.Quantity,
		CodeType:    r.CodeType,
		LabelWidth:  r.LabelWidth,
		LabelHeight: r.LabelHeight,
		IsTemplate:  r.IsTemplate,
	}
}

// UpdateConfigRequest is the body of PUT /configs/:id. Omitted fields are
// left unchanged.
type UpdateConfigRequest struct {
	Name       *string `json:"name"`
	Quantity   *int    `json:"quantity"`
	CodeType   *string `json:"codeType"`
	IsTemplate *bool   `json:"isTemplate"`
	Version    *int    `json:"version"`
}

func (r UpdateConfigRequest) ToInput() labelconfig.UpdateInput {
	return labelconfig.UpdateInput{
		Name:       r.Name,
		Quantity:   r.Quantity,
		CodeType:   r.CodeType,
		IsTemplate: r.IsTemplate,
		Version:    r.Version,
	}
}

// ConfigListQuery is the query of GET /configs.
type ConfigListQuery struct {
	PageQuery
	IsTemplate *bool `form:"isTemplate"`
}

// GenerateRequest is the body of POST /configs/:id/generate.
type GenerateRequest struct {
	SaveToDB bool `json:"saveToDB"`
}

// GenerateResponse lists the codes of a configuration run.
type GenerateResponse struct {
	ConfigID string   `json:"configId"`
	BaseName string   `json:"baseName"`
	CodeType string   `json:"codeType"`
	Quantity int      `json:"quantity"`
	Codes    []string `json:"codes"`
	Saved    int64    `json:"saved"`
}

func FromGenerateResult(r *labelconfig.GenerateResult) GenerateResponse {
	return GenerateResponse{
		ConfigID: r.Config.ID.String(),
		BaseName: r.Config.BaseName,
		CodeType: string(r.Config.CodeType),
		Quantity: len(r.Codes),
		Codes:    r.Codes,
		Saved:    r.Saved,
	}
}
