// Package schema defines the field descriptor and node template model that
// drives every configuration panel in the builder, together with the default
// resolver, config merge and validation logic.
package schema

// Kind identifies the value type of a configurable field. Rendering,
// validation and default resolution dispatch on it through lookup tables.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindBoolean     Kind = "boolean"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindTextarea    Kind = "textarea"
	KindCode        Kind = "code"
	KindSlider      Kind = "slider"
	KindColor       Kind = "color"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindArray       Kind = "array"
	KindPassword    Kind = "password"
	KindEmail       Kind = "email"
	KindURL         Kind = "url"
)

// Kinds lists every declared field kind. The default resolver and the kind
// checks are keyed off this list, so tests can assert totality.
func Kinds() []Kind {
	return []Kind{
		KindText, KindNumber, KindBoolean, KindSelect, KindMultiSelect,
		KindTextarea, KindCode, KindSlider, KindColor, KindDate, KindTime,
		KindArray, KindPassword, KindEmail, KindURL,
	}
}

// Config is the live key-value state of a single placed node.
type Config map[string]any

// Clone returns a shallow copy of the config.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// Predicate decides field visibility from the current config. Predicates must
// be pure functions of the config only so they stay testable in isolation.
type Predicate func(Config) bool

// CustomRule validates a field value against the whole config. A nil return
// means the value passes; a non-nil error fails validation with the error's
// message.
type CustomRule func(value any, cfg Config) error

// Option is one ordered entry of a select or multiselect field.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rules holds the optional named validation rules of a field. Rules are
// evaluated in declaration order (Min, Max, MinLength, MaxLength, Pattern,
// Custom); the first failing rule produces the field's single error message.
type Rules struct {
	Min            *float64
	Max            *float64
	MinLength      *int
	MaxLength      *int
	Pattern        string
	PatternMessage string
	Custom         CustomRule
}

// Field declares a single configurable parameter of a node template.
type Field struct {
	Key         string
	Kind        Kind
	Label       string
	Description string
	Placeholder string
	Required    bool

	// Default is used when no stored value exists. When nil the resolver
	// falls back to a kind-derived value.
	Default any

	// Options applies to select and multiselect kinds.
	Options []Option

	// Min, Max and Step bound number and slider kinds.
	Min  *float64
	Max  *float64
	Step *float64

	Rules *Rules

	// VisibleWhen hides the field when it evaluates false. Hidden fields are
	// excluded from validation regardless of their stored value.
	VisibleWhen Predicate
}

// DisplayLabel returns the label used in error messages, falling back to the
// key for fields declared without one.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}

	return f.Key
}

// Visible reports whether the field should be shown and validated for the
// given config.
func (f Field) Visible(cfg Config) bool {
	if f.VisibleWhen == nil {
		return true
	}

	return f.VisibleWhen(cfg)
}

// FloatPtr, IntPtr and helpers keep template declarations compact.
func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
