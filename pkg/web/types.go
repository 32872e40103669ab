// Package web provides HTTP request and response types for the builder API.
package web

import (
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/schema"
)

// CreateFlowRequest represents the request body for creating a new flow.
type CreateFlowRequest struct {
	Name        string         `json:"name"               validate:"required,min=3"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Owner       string         `json:"owner"`
}

// UpdateFlowRequest represents the request body for updating an existing
// flow. All fields are optional to support partial updates.
type UpdateFlowRequest struct {
	Name        *string              `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string              `json:"description,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	Connections []*models.Connection `json:"connections,omitempty"`
}

// CreateNodeRequest represents the request body for placing a node.
type CreateNodeRequest struct {
	Type      string         `json:"type"       validate:"required"`
	Name      string         `json:"name"`
	Config    map[string]any `json:"config"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// UpdateNodeRequest represents the request body for updating a node. The
// node's type is fixed at creation.
type UpdateNodeRequest struct {
	Name      *string        `json:"name,omitempty"    validate:"omitempty,min=1"`
	Config    map[string]any `json:"config,omitempty"`
	PositionX *int           `json:"position_x,omitempty"`
	PositionY *int           `json:"position_y,omitempty"`
	Enabled   *bool          `json:"enabled,omitempty"`
}

// OptionResponse is one select option.
type OptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RulesResponse exposes the declarative validation rules of a field. The
// custom rule is server-side only, so clients just learn whether one exists.
type RulesResponse struct {
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	MinLength      *int     `json:"min_length,omitempty"`
	MaxLength      *int     `json:"max_length,omitempty"`
	Pattern        string   `json:"pattern,omitempty"`
	PatternMessage string   `json:"pattern_message,omitempty"`
	HasCustom      bool     `json:"has_custom,omitempty"`
}

// FieldResponse is the wire form of a field descriptor. Visibility
// predicates are Go functions and do not serialize; Conditional tells the
// canvas to re-query effective visibility instead of assuming always-on.
type FieldResponse struct {
	Key         string           `json:"key"`
	Kind        string           `json:"kind"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Default     any              `json:"default"`
	Options     []OptionResponse `json:"options,omitempty"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Step        *float64         `json:"step,omitempty"`
	Rules       *RulesResponse   `json:"rules,omitempty"`
	Conditional bool             `json:"conditional"`
}

// TemplateResponse is the wire form of a node template.
type TemplateResponse struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Fields      []FieldResponse `json:"fields"`
	Inputs      []schema.Port   `json:"inputs"`
	Outputs     []schema.Port   `json:"outputs"`
}

// TransformTemplateResponse converts a template into its wire form,
// resolving each field's effective default.
func TransformTemplateResponse(t *schema.Template) TemplateResponse {
	fields := make([]FieldResponse, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, transformFieldResponse(f))
	}

	inputs := t.Inputs
	if inputs == nil {
		inputs = []schema.Port{}
	}

	outputs := t.Outputs
	if outputs == nil {
		outputs = []schema.Port{}
	}

	return TemplateResponse{
		Type:        t.Type,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Icon:        t.Icon,
		Fields:      fields,
		Inputs:      inputs,
		Outputs:     outputs,
	}
}

func transformFieldResponse(f schema.Field) FieldResponse {
	resp := FieldResponse{
		Key:         f.Key,
		Kind:        string(f.Kind),
		Label:       f.DisplayLabel(),
		Description: f.Description,
		Placeholder: f.Placeholder,
		Required:    f.Required,
		Default:     schema.FallbackValue(f),
		Min:         f.Min,
		Max:         f.Max,
		Step:        f.Step,
		Conditional: f.VisibleWhen != nil,
	}

	for _, opt := range f.Options {
		resp.Options = append(resp.Options, OptionResponse{Label: opt.Label, Value: opt.Value})
	}

	if f.Rules != nil {
		resp.Rules = &RulesResponse{
			Min:            f.Rules.Min,
			Max:            f.Rules.Max,
			MinLength:      f.Rules.MinLength,
			MaxLength:      f.Rules.MaxLength,
			Pattern:        f.Rules.Pattern,
			PatternMessage: f.Rules.PatternMessage,
			HasCustom:      f.Rules.Custom != nil,
		}
	}

	return resp
}
