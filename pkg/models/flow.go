// Package models defines the core domain models for node-based app flows.
package models

import "time"

// FlowStatus represents the lifecycle state of a flow.
type FlowStatus string

const (
	FlowStatusDraft     FlowStatus = "draft"     // Editable, not publishable output
	FlowStatusPublished FlowStatus = "published" // Frozen, served to consumers
	FlowStatusArchived  FlowStatus = "archived"  // Historical, read-only
)

// Flow represents one canvas: the placed component nodes, the connections
// wiring their ports, and app-level metadata.
type Flow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"                   validate:"required,min=3"`
	Description string         `json:"description"`
	Status      FlowStatus     `json:"status"                 validate:"required"`
	Nodes       []*FlowNode    `json:"nodes"`
	Connections []*Connection  `json:"connections"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Owner       string         `json:"owner"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
}

// NodeByID returns the placed node with the given ID.
func (f *Flow) NodeByID(id string) (*FlowNode, bool) {
	for _, node := range f.Nodes {
		if node.ID == id {
			return node, true
		}
	}

	return nil, false
}

// Editable reports whether the flow accepts node and connection mutations.
func (f *Flow) Editable() bool {
	return f.Status == FlowStatusDraft
}
