// Package testutil provides test data builders for flows and nodes.
package testutil

import (
	"time"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/google/uuid"
)

// CreateTestNode creates a FlowNode with default values that can be
// overridden.
func CreateTestNode(overrides ...func(*models.FlowNode)) *models.FlowNode {
	node := &models.FlowNode{
		ID:        uuid.New().String(),
		Type:      "swap",
		Name:      "1inch Swap",
		Config:    map[string]any{"apiKey": "secret", "chain": "1"},
		PositionX: 100,
		PositionY: 200,
		Enabled:   true,
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// CreateTestFlow creates a draft Flow with default values that can be
// overridden.
func CreateTestFlow(overrides ...func(*models.Flow)) *models.Flow {
	now := time.Now().UTC()

	flow := &models.Flow{
		ID:          uuid.New().String(),
		Name:        "Test Flow",
		Status:      models.FlowStatusDraft,
		Nodes:       []*models.FlowNode{},
		Connections: []*models.Connection{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, override := range overrides {
		override(flow)
	}

	return flow
}

// WithNodes attaches the given nodes to the flow.
func WithNodes(nodes ...*models.FlowNode) func(*models.Flow) {
	return func(f *models.Flow) {
		f.Nodes = nodes
	}
}

// WithStatus sets the flow status.
func WithStatus(status models.FlowStatus) func(*models.Flow) {
	return func(f *models.Flow) {
		f.Status = status
	}
}
