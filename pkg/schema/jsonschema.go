package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jsonTypeByKind maps field kinds to JSON Schema primitive types. String-ish
// kinds all map to "string"; their semantics are carried by "format".
var jsonTypeByKind = map[Kind]string{
	KindText:        "string",
	KindTextarea:    "string",
	KindCode:        "string",
	KindColor:       "string",
	KindDate:        "string",
	KindTime:        "string",
	KindPassword:    "string",
	KindEmail:       "string",
	KindURL:         "string",
	KindSelect:      "string",
	KindNumber:      "number",
	KindSlider:      "number",
	KindBoolean:     "boolean",
	KindMultiSelect: "array",
	KindArray:       "array",
}

var jsonFormatByKind = map[Kind]string{
	KindEmail: "email",
	KindURL:   "uri",
	KindDate:  "date",
	KindTime:  "time",
}

// JSONSchema exports a template's fields as a JSON Schema document
// (map[string]any, ready for serialization). Visibility predicates are Go
// functions and cannot be expressed statically, so conditional fields export
// unconstrained and never land in the "required" list.
func JSONSchema(t *Template) map[string]any {
	properties := make(map[string]any, len(t.Fields))
	required := make([]string, 0)

	for _, f := range t.Fields {
		if f.VisibleWhen != nil {
			// Visibility cannot be expressed statically, and a hidden field
			// must never fail validation, so conditional fields export as an
			// unconstrained property.
			prop := map[string]any{}
			if f.Description != "" {
				prop["description"] = f.Description
			}

			properties[f.Key] = prop

			continue
		}

		properties[f.Key] = fieldProperty(f)

		if f.Required {
			required = append(required, f.Key)
		}
	}

	doc := map[string]any{
		"type":        "object",
		"title":       t.Name,
		"description": t.Description,
		"properties":  properties,
	}

	if len(required) > 0 {
		doc["required"] = required
	}

	return doc
}

func fieldProperty(f Field) map[string]any {
	prop := map[string]any{
		"type": jsonTypeByKind[f.Kind],
	}

	if f.Description != "" {
		prop["description"] = f.Description
	}

	if format, ok := jsonFormatByKind[f.Kind]; ok {
		prop["format"] = format
	}

	if f.Default != nil {
		prop["default"] = f.Default
	}

	if len(f.Options) > 0 {
		enum := make([]any, 0, len(f.Options))
		for _, opt := range f.Options {
			enum = append(enum, opt.Value)
		}

		if f.Kind == KindMultiSelect {
			prop["items"] = map[string]any{"type": "string", "enum": enum}
		} else {
			prop["enum"] = enum
		}
	}

	if f.Min != nil {
		prop["minimum"] = *f.Min
	}

	if f.Max != nil {
		prop["maximum"] = *f.Max
	}

	if f.Rules != nil {
		if f.Rules.Min != nil {
			prop["minimum"] = *f.Rules.Min
		}

		if f.Rules.Max != nil {
			prop["maximum"] = *f.Rules.Max
		}

		if f.Rules.MinLength != nil {
			prop["minLength"] = *f.Rules.MinLength
		}

		if f.Rules.MaxLength != nil {
			prop["maxLength"] = *f.Rules.MaxLength
		}

		if f.Rules.Pattern != "" {
			prop["pattern"] = f.Rules.Pattern
		}
	}

	return prop
}

// ValidateDocument cross-checks a config against the template's exported
// JSON Schema. It is a shape-level check used by tooling; Validate remains
// the authoritative validator because predicates and custom rules do not
// translate to JSON Schema.
func ValidateDocument(t *Template, cfg Config) error {
	schemaLoader := gojsonschema.NewGoLoader(JSONSchema(t))
	documentLoader := gojsonschema.NewGoLoader(map[string]any(cfg))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			messages = append(messages, resultError.String())
		}

		return fmt.Errorf("JSON schema validation failed: %s", strings.Join(messages, "; "))
	}

	return nil
}
