// Package events defines event types for flow and node lifecycle
// notifications.
package events

import (
	"time"

	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every flow lifecycle event.
const Topic = "dexforge.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Flow lifecycle events.
	FlowCreatedEvent   EventType = "flow.created"
	FlowUpdatedEvent   EventType = "flow.updated"
	FlowDeletedEvent   EventType = "flow.deleted"
	FlowPublishedEvent EventType = "flow.published"

	// Node lifecycle events.
	NodeAddedEvent       EventType = "node.added"
	NodeConfigSavedEvent EventType = "node.config.saved"
	NodeRemovedEvent     EventType = "node.removed"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	FlowID    string         `json:"flow_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent stamps identity and time for an event envelope.
func NewBaseEvent(eventType EventType, flowID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		FlowID:    flowID,
	}
}

type FlowCreated struct {
	BaseEvent

	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
}

func (e FlowCreated) GetType() EventType {
	return FlowCreatedEvent
}

type FlowUpdated struct {
	BaseEvent

	Name string `json:"name"`
}

func (e FlowUpdated) GetType() EventType {
	return FlowUpdatedEvent
}

type FlowDeleted struct {
	BaseEvent
}

func (e FlowDeleted) GetType() EventType {
	return FlowDeletedEvent
}

type FlowPublished struct {
	BaseEvent

	PublishedAt time.Time `json:"published_at"`
	NodeCount   int       `json:"node_count"`
}

func (e FlowPublished) GetType() EventType {
	return FlowPublishedEvent
}

type NodeAdded struct {
	BaseEvent

	NodeID   string `json:"node_id"`
	NodeType string `json:"node_type"`
}

func (e NodeAdded) GetType() EventType {
	return NodeAddedEvent
}

// NodeConfigSaved fires when a panel save commits a node's configuration.
type NodeConfigSaved struct {
	BaseEvent

	NodeID string        `json:"node_id"`
	Config schema.Config `json:"config"`
}

func (e NodeConfigSaved) GetType() EventType {
	return NodeConfigSavedEvent
}

type NodeRemoved struct {
	BaseEvent

	NodeID string `json:"node_id"`
}

func (e NodeRemoved) GetType() EventType {
	return NodeRemovedEvent
}
