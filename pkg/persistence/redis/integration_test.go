package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/persistence/redis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Persistence {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set, skipping redis integration tests")
	}

	p, err := redis.NewPersistence(context.Background(), redisURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = p.Close(context.Background())
	})

	return p
}

func TestRedisPersistence_FlowLifecycle(t *testing.T) {
	p := setupRedis(t)
	ctx := context.Background()

	flow := &models.Flow{
		ID:     uuid.New().String(),
		Name:   "Redis Flow",
		Status: models.FlowStatusDraft,
		Nodes: []*models.FlowNode{
			{ID: "n1", Type: "swap", Name: "Swap", Config: map[string]any{"apiKey": "k"}, Enabled: true},
		},
		Connections: []*models.Connection{},
	}

	require.NoError(t, p.FlowRepository().Save(ctx, flow))

	defer func() {
		_ = p.FlowRepository().Delete(ctx, flow.ID)
	}()

	loaded, err := p.FlowRepository().GetByID(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, "Redis Flow", loaded.Name)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "swap", loaded.Nodes[0].Type)
	assert.False(t, loaded.UpdatedAt.IsZero())

	_, err = p.FlowRepository().GetByID(ctx, uuid.New().String())
	assert.True(t, persistence.IsFlowNotFound(err))

	require.NoError(t, p.FlowRepository().Delete(ctx, flow.ID))

	_, err = p.FlowRepository().GetByID(ctx, flow.ID)
	assert.True(t, persistence.IsFlowNotFound(err))
}

func TestRedisPersistence_NodeRepository(t *testing.T) {
	p := setupRedis(t)
	ctx := context.Background()

	flow := &models.Flow{
		ID:     uuid.New().String(),
		Name:   "Node Host",
		Status: models.FlowStatusDraft,
	}
	require.NoError(t, p.FlowRepository().Save(ctx, flow))

	defer func() {
		_ = p.FlowRepository().Delete(ctx, flow.ID)
	}()

	node := &models.FlowNode{
		ID:      "n1",
		Type:    "quote",
		Name:    "Price Quote",
		Config:  map[string]any{"refreshInterval": float64(10)},
		Enabled: true,
	}
	require.NoError(t, p.NodeRepository().SaveNode(ctx, flow.ID, node))

	loaded, err := p.NodeRepository().GetNodeByFlow(ctx, flow.ID, "n1")
	require.NoError(t, err)
	assert.Equal(t, "quote", loaded.Type)

	nodes, err := p.NodeRepository().GetNodesByFlow(ctx, flow.ID)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)

	require.NoError(t, p.NodeRepository().DeleteNode(ctx, flow.ID, "n1"))

	err = p.NodeRepository().DeleteNode(ctx, flow.ID, "n1")
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestRedisPersistence_HealthCheck(t *testing.T) {
	p := setupRedis(t)

	assert.NoError(t, p.HealthCheck(context.Background()))
}
