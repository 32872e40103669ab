// Package persistence defines the storage abstraction for flows and their
// nodes.
package persistence

import (
	"context"

	"github.com/dexforge/dexforge/pkg/models"
)

// ListFlowsOptions controls filtering, sorting and pagination of flow lists.
type ListFlowsOptions struct {
	Owner  string
	Status *models.FlowStatus

	// SortBy accepts created_at, updated_at or name.
	SortBy    string
	SortOrder string

	Limit  int
	Offset int
}

// FlowListResult is one page of flows plus paging metadata.
type FlowListResult struct {
	Flows       []*models.Flow
	TotalCount  int64
	HasNextPage bool
}

// FlowRepository stores whole flows.
type FlowRepository interface {
	ListFlows(ctx context.Context, opts ListFlowsOptions) (*FlowListResult, error)
	GetByID(ctx context.Context, flowID string) (*models.Flow, error)
	Save(ctx context.Context, flow *models.Flow) error
	Delete(ctx context.Context, flowID string) error
}

// NodeRepository reads and mutates the nodes of a flow. Implementations load
// and store through the owning flow, so node writes share the flow's
// update timestamp semantics.
type NodeRepository interface {
	GetNodesByFlow(ctx context.Context, flowID string) ([]*models.FlowNode, error)
	GetNodeByFlow(ctx context.Context, flowID, nodeID string) (*models.FlowNode, error)
	SaveNode(ctx context.Context, flowID string, node *models.FlowNode) error
	DeleteNode(ctx context.Context, flowID, nodeID string) error
}

// Persistence is the storage backend contract. Backends are selected by URL
// scheme, see cmd.NewPersistence.
type Persistence interface {
	FlowRepository() FlowRepository
	NodeRepository() NodeRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
