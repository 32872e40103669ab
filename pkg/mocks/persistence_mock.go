// Package mocks provides mock implementations of the storage and event bus
// interfaces for testing.
package mocks

import (
	"context"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockFlowRepository is a mock implementation of persistence.FlowRepository.
type MockFlowRepository struct {
	mock.Mock
}

func (m *MockFlowRepository) ListFlows(ctx context.Context, opts persistence.ListFlowsOptions) (*persistence.FlowListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*persistence.FlowListResult), args.Error(1)
}

func (m *MockFlowRepository) GetByID(ctx context.Context, flowID string) (*models.Flow, error) {
	args := m.Called(ctx, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Flow), args.Error(1)
}

func (m *MockFlowRepository) Save(ctx context.Context, flow *models.Flow) error {
	args := m.Called(ctx, flow)

	return args.Error(0)
}

func (m *MockFlowRepository) Delete(ctx context.Context, flowID string) error {
	args := m.Called(ctx, flowID)

	return args.Error(0)
}

// MockNodeRepository is a mock implementation of persistence.NodeRepository.
type MockNodeRepository struct {
	mock.Mock
}

func (m *MockNodeRepository) GetNodesByFlow(ctx context.Context, flowID string) ([]*models.FlowNode, error) {
	args := m.Called(ctx, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.FlowNode), args.Error(1)
}

func (m *MockNodeRepository) GetNodeByFlow(ctx context.Context, flowID, nodeID string) (*models.FlowNode, error) {
	args := m.Called(ctx, flowID, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.FlowNode), args.Error(1)
}

func (m *MockNodeRepository) SaveNode(ctx context.Context, flowID string, node *models.FlowNode) error {
	args := m.Called(ctx, flowID, node)

	return args.Error(0)
}

func (m *MockNodeRepository) DeleteNode(ctx context.Context, flowID, nodeID string) error {
	args := m.Called(ctx, flowID, nodeID)

	return args.Error(0)
}

// MockPersistence is a mock implementation of persistence.Persistence.
type MockPersistence struct {
	mock.Mock

	flowRepo *MockFlowRepository
	nodeRepo *MockNodeRepository
}

// NewMockPersistence creates a MockPersistence with all mock repositories.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		flowRepo: &MockFlowRepository{},
		nodeRepo: &MockNodeRepository{},
	}
}

// GetMockFlowRepository returns the underlying mock flow repository for
// setting up expectations.
func (m *MockPersistence) GetMockFlowRepository() *MockFlowRepository {
	return m.flowRepo
}

// GetMockNodeRepository returns the underlying mock node repository for
// setting up expectations.
func (m *MockPersistence) GetMockNodeRepository() *MockNodeRepository {
	return m.nodeRepo
}

func (m *MockPersistence) FlowRepository() persistence.FlowRepository {
	return m.flowRepo
}

func (m *MockPersistence) NodeRepository() persistence.NodeRepository {
	return m.nodeRepo
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
