package services

import (
	"context"
	"fmt"

	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/events"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/registry"
	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/google/uuid"
)

// CreateNodeRequest represents the request to place a new node on a flow.
type CreateNodeRequest struct {
	Type      string
	Name      string
	Config    schema.Config
	PositionX int
	PositionY int
}

// UpdateNodeRequest represents a node update. The node's type is fixed at
// creation and never changes.
type UpdateNodeRequest struct {
	Name      *string
	Config    schema.Config
	PositionX *int
	PositionY *int
	Enabled   *bool
}

// Node handles node-related business operations.
type Node struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	publisher   eventbus.EventPublisher
}

// NewNode creates a new node service.
func NewNode(persistence persistence.Persistence, reg *registry.Registry, publisher eventbus.EventPublisher) *Node {
	return &Node{
		persistence: persistence,
		registry:    reg,
		publisher:   publisher,
	}
}

// CreateNode places a node on a draft flow. The config starts from the
// template defaults, overlaid with any values supplied in the request, and
// must validate before the node is stored.
func (n *Node) CreateNode(ctx context.Context, flowID string, req *CreateNodeRequest) (*models.FlowNode, error) {
	flow, err := n.editableFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	template, err := n.registry.Get(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.Type)
	}

	config := schema.Merge(template, req.Config)
	if errs := schema.Validate(template, config); len(errs) > 0 {
		return nil, &ConfigValidationError{NodeID: "", Errors: errs}
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}

	node := &models.FlowNode{
		ID:        uuid.New().String(),
		Type:      req.Type,
		Name:      name,
		Config:    config,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
		Enabled:   true,
	}

	if err := n.persistence.NodeRepository().SaveNode(ctx, flow.ID, node); err != nil {
		return nil, fmt.Errorf("failed to save node: %w", err)
	}

	n.publish(ctx, flowID, events.NodeAdded{
		BaseEvent: events.NewBaseEvent(events.NodeAddedEvent, flowID),
		NodeID:    node.ID,
		NodeType:  node.Type,
	})

	return node, nil
}

// GetNode retrieves a specific node from the specified flow.
func (n *Node) GetNode(ctx context.Context, flowID, nodeID string) (*models.FlowNode, error) {
	return n.persistence.NodeRepository().GetNodeByFlow(ctx, flowID, nodeID)
}

// ListNodes returns all nodes of a flow.
func (n *Node) ListNodes(ctx context.Context, flowID string) ([]*models.FlowNode, error) {
	return n.persistence.NodeRepository().GetNodesByFlow(ctx, flowID)
}

// UpdateNode updates an existing node. A config in the request replaces the
// stored one after re-merging with the template defaults and validating.
func (n *Node) UpdateNode(ctx context.Context, flowID, nodeID string, req *UpdateNodeRequest) (*models.FlowNode, error) {
	flow, err := n.editableFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	node, err := n.persistence.NodeRepository().GetNodeByFlow(ctx, flow.ID, nodeID)
	if err != nil {
		return nil, err
	}

	configSaved := false

	if req.Config != nil {
		template, err := n.registry.Get(node.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, node.Type)
		}

		config := schema.Merge(template, req.Config)
		if errs := schema.Validate(template, config); len(errs) > 0 {
			return nil, &ConfigValidationError{NodeID: nodeID, Errors: errs}
		}

		node.Config = config
		configSaved = true
	}

	if req.Name != nil {
		node.Name = *req.Name
	}

	if req.PositionX != nil {
		node.PositionX = *req.PositionX
	}

	if req.PositionY != nil {
		node.PositionY = *req.PositionY
	}

	if req.Enabled != nil {
		node.Enabled = *req.Enabled
	}

	if err := n.persistence.NodeRepository().SaveNode(ctx, flow.ID, node); err != nil {
		return nil, fmt.Errorf("failed to save node: %w", err)
	}

	if configSaved {
		n.publish(ctx, flowID, events.NodeConfigSaved{
			BaseEvent: events.NewBaseEvent(events.NodeConfigSavedEvent, flowID),
			NodeID:    node.ID,
			Config:    node.Config,
		})
	}

	return node, nil
}

// DeleteNode removes a node and every connection touching its ports.
func (n *Node) DeleteNode(ctx context.Context, flowID, nodeID string) error {
	flow, err := n.editableFlow(ctx, flowID)
	if err != nil {
		return err
	}

	if err := n.persistence.NodeRepository().DeleteNode(ctx, flow.ID, nodeID); err != nil {
		return err
	}

	if err := n.pruneConnections(ctx, flow.ID, nodeID); err != nil {
		return err
	}

	n.publish(ctx, flowID, events.NodeRemoved{
		BaseEvent: events.NewBaseEvent(events.NodeRemovedEvent, flowID),
		NodeID:    nodeID,
	})

	return nil
}

// pruneConnections drops connections whose source or target port belongs to
// the removed node.
func (n *Node) pruneConnections(ctx context.Context, flowID, nodeID string) error {
	flow, err := n.persistence.FlowRepository().GetByID(ctx, flowID)
	if err != nil {
		return err
	}

	kept := make([]*models.Connection, 0, len(flow.Connections))

	for _, conn := range flow.Connections {
		sourceNode, _, _ := models.ParsePortID(conn.SourcePort)
		targetNode, _, _ := models.ParsePortID(conn.TargetPort)

		if sourceNode == nodeID || targetNode == nodeID {
			continue
		}

		kept = append(kept, conn)
	}

	if len(kept) == len(flow.Connections) {
		return nil
	}

	flow.Connections = kept

	return n.persistence.FlowRepository().Save(ctx, flow)
}

func (n *Node) editableFlow(ctx context.Context, flowID string) (*models.Flow, error) {
	flow, err := n.persistence.FlowRepository().GetByID(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if !flow.Editable() {
		return nil, fmt.Errorf("%w: flow %s is %s", ErrCannotModifyPublished, flowID, flow.Status)
	}

	return flow, nil
}

func (n *Node) publish(ctx context.Context, key string, event eventbus.Event) {
	if n.publisher == nil {
		return
	}

	_ = n.publisher.Publish(ctx, key, event)
}
