package schema

// PortDirection represents the direction of data flow for a port.
type PortDirection string

const (
	PortDirectionInput  PortDirection = "input"
	PortDirectionOutput PortDirection = "output"
)

// Port describes a named connection point on a template. The Type is a
// display/compatibility tag for the canvas (e.g. "token", "execution",
// "amount"), not a runtime type system.
type Port struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

// Template declares one buildable component type: its display metadata, the
// ordered field descriptors behind its configuration panel, and the ports
// used for visual wiring. Templates are static, registered at process start
// and never mutated at runtime.
type Template struct {
	Type        string
	Name        string
	Description string
	Category    string
	Icon        string

	Fields  []Field
	Inputs  []Port
	Outputs []Port
}

// FieldByKey returns the field descriptor for the given key.
func (t *Template) FieldByKey(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}

	return Field{}, false
}

// FieldKeys returns the declared field keys in order.
func (t *Template) FieldKeys() []string {
	keys := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		keys = append(keys, f.Key)
	}

	return keys
}
