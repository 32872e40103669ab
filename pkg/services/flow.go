package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/events"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/google/uuid"
)

// ErrFlowNotFound is returned when a flow is not found.
var ErrFlowNotFound = persistence.ErrFlowNotFound

// Flow handles flow-level business operations.
type Flow struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
}

// NewFlow creates a new flow service. The publisher may be nil when no event
// bus is configured.
func NewFlow(persistence persistence.Persistence, publisher eventbus.EventPublisher) *Flow {
	return &Flow{
		persistence: persistence,
		publisher:   publisher,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Flow) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListFlowsRequest contains options for listing flows.
type ListFlowsRequest struct {
	Limit  int
	Offset int

	Owner  string
	Status *models.FlowStatus

	SortBy    string
	SortOrder string
}

// ListFlowsResponse contains the result of listing flows.
type ListFlowsResponse struct {
	Flows       []*models.Flow `json:"flows"`
	TotalCount  int64          `json:"total_count"`
	HasNextPage bool           `json:"has_next_page"`
}

// ListFlows retrieves flows with filtering, sorting and pagination.
func (s *Flow) ListFlows(ctx context.Context, req ListFlowsRequest) (*ListFlowsResponse, error) {
	if err := s.validateListFlowsRequest(&req); err != nil {
		return nil, err
	}

	result, err := s.persistence.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{
		Limit:     req.Limit,
		Offset:    req.Offset,
		Owner:     req.Owner,
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}

	return &ListFlowsResponse{
		Flows:       result.Flows,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

func (s *Flow) validateListFlowsRequest(req *ListFlowsRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	allowedSorts := []string{"created_at", "updated_at", "name"}
	if !slices.Contains(allowedSorts, req.SortBy) {
		return fmt.Errorf("%w: '%s', allowed: %s",
			ErrInvalidSortField, req.SortBy, strings.Join(allowedSorts, ", "))
	}

	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		return fmt.Errorf("%w: '%s', allowed: asc, desc", ErrInvalidSortOrder, req.SortOrder)
	}

	if req.Status != nil {
		allowedStatuses := []models.FlowStatus{
			models.FlowStatusDraft,
			models.FlowStatusPublished,
			models.FlowStatusArchived,
		}

		if !slices.Contains(allowedStatuses, *req.Status) {
			return fmt.Errorf("%w: '%s'", ErrInvalidStatus, *req.Status)
		}
	}

	req.Owner = strings.TrimSpace(req.Owner)

	return nil
}

// FetchByID retrieves a flow by its ID.
func (s *Flow) FetchByID(ctx context.Context, id string) (*models.Flow, error) {
	return s.persistence.FlowRepository().GetByID(ctx, id)
}

// CreateFlowRequest carries the fields of a new flow.
type CreateFlowRequest struct {
	Name        string
	Description string
	Owner       string
	Metadata    map[string]any
}

// CreateFlow creates an empty draft flow.
func (s *Flow) CreateFlow(ctx context.Context, req CreateFlowRequest) (*models.Flow, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrFlowNameRequired
	}

	flow := &models.Flow{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Status:      models.FlowStatusDraft,
		Nodes:       make([]*models.FlowNode, 0),
		Connections: make([]*models.Connection, 0),
		Metadata:    req.Metadata,
		Owner:       req.Owner,
	}

	if err := s.persistence.FlowRepository().Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to save flow: %w", err)
	}

	s.publish(ctx, flow.ID, events.FlowCreated{
		BaseEvent: events.NewBaseEvent(events.FlowCreatedEvent, flow.ID),
		Name:      flow.Name,
		Owner:     flow.Owner,
	})

	return flow, nil
}

// UpdateFlowRequest carries mutable flow-level fields. Nil pointers leave the
// current value untouched.
type UpdateFlowRequest struct {
	Name        *string
	Description *string
	Metadata    map[string]any
	Connections []*models.Connection
}

// UpdateFlow updates flow-level fields and canvas connections. Only draft
// flows accept updates.
func (s *Flow) UpdateFlow(ctx context.Context, id string, req UpdateFlowRequest) (*models.Flow, error) {
	flow, err := s.persistence.FlowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !flow.Editable() {
		return nil, fmt.Errorf("%w: flow %s is %s", ErrCannotModifyPublished, id, flow.Status)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrFlowNameRequired
		}

		flow.Name = *req.Name
	}

	if req.Description != nil {
		flow.Description = *req.Description
	}

	if req.Metadata != nil {
		flow.Metadata = req.Metadata
	}

	if req.Connections != nil {
		flow.Connections = req.Connections
	}

	if err := s.persistence.FlowRepository().Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to save flow: %w", err)
	}

	s.publish(ctx, flow.ID, events.FlowUpdated{
		BaseEvent: events.NewBaseEvent(events.FlowUpdatedEvent, flow.ID),
		Name:      flow.Name,
	})

	return flow, nil
}

// DeleteFlow removes a flow and its nodes.
func (s *Flow) DeleteFlow(ctx context.Context, id string) error {
	// Surface not-found before the delete, which is a no-op for absent IDs.
	if _, err := s.persistence.FlowRepository().GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.persistence.FlowRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flow: %w", err)
	}

	s.publish(ctx, id, events.FlowDeleted{
		BaseEvent: events.NewBaseEvent(events.FlowDeletedEvent, id),
	})

	return nil
}

// publish emits an event when a bus is configured. Event delivery is best
// effort and never fails the operation.
func (s *Flow) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.publisher == nil {
		return
	}

	_ = s.publisher.Publish(ctx, key, event)
}
