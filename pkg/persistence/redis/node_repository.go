package redis

import (
	"context"
	"fmt"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
)

// nodeRepository reads and writes nodes through the owning flow blob.
type nodeRepository struct {
	flows *FlowRepository
}

func (nr *nodeRepository) GetNodesByFlow(ctx context.Context, flowID string) ([]*models.FlowNode, error) {
	flow, err := nr.flows.GetByID(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flow %s: %w", flowID, err)
	}

	return flow.Nodes, nil
}

func (nr *nodeRepository) GetNodeByFlow(ctx context.Context, flowID, nodeID string) (*models.FlowNode, error) {
	flow, err := nr.flows.GetByID(ctx, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flow %s: %w", flowID, err)
	}

	node, ok := flow.NodeByID(nodeID)
	if !ok {
		return nil, persistence.NewNodeError("GetNodeByFlow", flowID, nodeID, persistence.ErrNodeNotFound)
	}

	return node, nil
}

func (nr *nodeRepository) SaveNode(ctx context.Context, flowID string, node *models.FlowNode) error {
	flow, err := nr.flows.GetByID(ctx, flowID)
	if err != nil {
		return fmt.Errorf("failed to get flow %s: %w", flowID, err)
	}

	for i, existing := range flow.Nodes {
		if existing.ID == node.ID {
			flow.Nodes[i] = node

			return nr.flows.Save(ctx, flow)
		}
	}

	flow.Nodes = append(flow.Nodes, node)

	return nr.flows.Save(ctx, flow)
}

func (nr *nodeRepository) DeleteNode(ctx context.Context, flowID, nodeID string) error {
	flow, err := nr.flows.GetByID(ctx, flowID)
	if err != nil {
		return fmt.Errorf("failed to get flow %s: %w", flowID, err)
	}

	for i, node := range flow.Nodes {
		if node.ID == nodeID {
			flow.Nodes = append(flow.Nodes[:i], flow.Nodes[i+1:]...)

			return nr.flows.Save(ctx, flow)
		}
	}

	return persistence.NewNodeError("DeleteNode", flowID, nodeID, persistence.ErrNodeNotFound)
}
