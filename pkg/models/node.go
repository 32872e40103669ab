package models

// FlowNode represents one placed component instance on the canvas. Config is
// seeded from the template defaults when the node is created and overwritten
// by panel saves; it is destroyed with the node.
type FlowNode struct {
	ID        string         `json:"id"         validate:"required"`
	Type      string         `json:"type"       validate:"required"` // Template type key
	Name      string         `json:"name"       validate:"required,min=1"`
	Config    map[string]any `json:"config"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
	Enabled   bool           `json:"enabled"`
}

// Connection wires an output port to an input port. Ports are referenced by
// ID: "{node_id}:{port_name}".
type Connection struct {
	ID         string `json:"id"`
	SourcePort string `json:"source_port" validate:"required"`
	TargetPort string `json:"target_port" validate:"required"`
}
