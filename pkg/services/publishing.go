package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/events"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/registry"
	"github.com/dexforge/dexforge/pkg/schema"
)

// Publishing handles the draft-to-published transition. A flow only publishes
// when every node's configuration validates against its template and every
// connection references an existing node port.
type Publishing struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	publisher   eventbus.EventPublisher
}

// NewPublishing creates a new publishing service.
func NewPublishing(persistence persistence.Persistence, reg *registry.Registry, publisher eventbus.EventPublisher) *Publishing {
	return &Publishing{
		persistence: persistence,
		registry:    reg,
		publisher:   publisher,
	}
}

// PublishFlow validates and publishes a draft flow.
func (p *Publishing) PublishFlow(ctx context.Context, flowID string) (*models.Flow, error) {
	flow, err := p.persistence.FlowRepository().GetByID(ctx, flowID)
	if err != nil {
		return nil, err
	}

	if flow.Status == models.FlowStatusPublished {
		return nil, ErrAlreadyPublished
	}

	if err := p.validateForPublishing(flow); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flow.Status = models.FlowStatusPublished
	flow.PublishedAt = &now

	if err := p.persistence.FlowRepository().Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to publish flow: %w", err)
	}

	p.publish(ctx, flowID, events.FlowPublished{
		BaseEvent:   events.NewBaseEvent(events.FlowPublishedEvent, flowID),
		PublishedAt: now,
		NodeCount:   len(flow.Nodes),
	})

	return flow, nil
}

// ArchiveFlow retires a published flow.
func (p *Publishing) ArchiveFlow(ctx context.Context, flowID string) (*models.Flow, error) {
	flow, err := p.persistence.FlowRepository().GetByID(ctx, flowID)
	if err != nil {
		return nil, err
	}

	flow.Status = models.FlowStatusArchived

	if err := p.persistence.FlowRepository().Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to archive flow: %w", err)
	}

	return flow, nil
}

// validateForPublishing ensures a flow is ready to be served to consumers.
func (p *Publishing) validateForPublishing(flow *models.Flow) error {
	if flow.Name == "" {
		return ErrFlowNameRequired
	}

	enabled := 0

	for _, node := range flow.Nodes {
		if node.Enabled {
			enabled++
		}
	}

	if enabled == 0 {
		return ErrNodesRequired
	}

	nodeErrors := make(map[string]schema.Errors)

	for _, node := range flow.Nodes {
		template, err := p.registry.Get(node.Type)
		if err != nil {
			nodeErrors[node.ID] = schema.Errors{"type": "Unknown component type " + node.Type}

			continue
		}

		if errs := schema.Validate(template, schema.Config(node.Config)); len(errs) > 0 {
			nodeErrors[node.ID] = errs
		}
	}

	if len(nodeErrors) > 0 {
		return &PublishValidationError{FlowID: flow.ID, NodeErrors: nodeErrors}
	}

	return p.validateConnections(flow)
}

// validateConnections checks that every connection references declared ports
// of nodes present on the canvas.
func (p *Publishing) validateConnections(flow *models.Flow) error {
	for _, conn := range flow.Connections {
		if err := p.validatePortRef(flow, conn.SourcePort, schema.PortDirectionOutput); err != nil {
			return fmt.Errorf("%w: connection %s: %w", ErrInvalidRequest, conn.ID, err)
		}

		if err := p.validatePortRef(flow, conn.TargetPort, schema.PortDirectionInput); err != nil {
			return fmt.Errorf("%w: connection %s: %w", ErrInvalidRequest, conn.ID, err)
		}
	}

	return nil
}

func (p *Publishing) validatePortRef(flow *models.Flow, portID string, direction schema.PortDirection) error {
	nodeID, portName, ok := models.ParsePortID(portID)
	if !ok {
		return fmt.Errorf("malformed port reference %q", portID)
	}

	node, ok := flow.NodeByID(nodeID)
	if !ok {
		return fmt.Errorf("port %q references unknown node %s", portID, nodeID)
	}

	template, err := p.registry.Get(node.Type)
	if err != nil {
		return fmt.Errorf("node %s has unknown type %s", nodeID, node.Type)
	}

	ports := template.Outputs
	if direction == schema.PortDirectionInput {
		ports = template.Inputs
	}

	for _, port := range ports {
		if port.Name == portName {
			return nil
		}
	}

	return fmt.Errorf("node %s has no %s port %q", nodeID, direction, portName)
}

func (p *Publishing) publish(ctx context.Context, key string, event eventbus.Event) {
	if p.publisher == nil {
		return
	}

	_ = p.publisher.Publish(ctx, key, event)
}

// ValidateFlow runs the publish validation without performing the
// transition, so the canvas can surface problems ahead of time.
func (p *Publishing) ValidateFlow(ctx context.Context, flowID string) error {
	flow, err := p.persistence.FlowRepository().GetByID(ctx, flowID)
	if err != nil {
		return err
	}

	return p.validateForPublishing(flow)
}
