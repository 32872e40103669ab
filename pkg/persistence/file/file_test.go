package file_test

import (
	"context"
	"testing"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/persistence/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlow(name string) *models.Flow {
	return &models.Flow{
		ID:     uuid.New().String(),
		Name:   name,
		Status: models.FlowStatusDraft,
		Nodes: []*models.FlowNode{
			{
				ID:      "swap-1",
				Type:    "swap",
				Name:    "Main Swap",
				Config:  map[string]any{"chain": "1", "slippage": 0.5},
				Enabled: true,
			},
		},
		Connections: []*models.Connection{},
	}
}

func TestFlowRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())
	ctx := context.Background()

	flow := newTestFlow("Swap App")
	require.NoError(t, p.FlowRepository().Save(ctx, flow))
	assert.False(t, flow.CreatedAt.IsZero())

	loaded, err := p.FlowRepository().GetByID(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, flow.Name, loaded.Name)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "swap", loaded.Nodes[0].Type)
	assert.Equal(t, 0.5, loaded.Nodes[0].Config["slippage"])
}

func TestFlowRepository_GetMissing(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())

	_, err := p.FlowRepository().GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, persistence.IsFlowNotFound(err))
}

func TestFlowRepository_Delete(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())
	ctx := context.Background()

	flow := newTestFlow("Doomed")
	require.NoError(t, p.FlowRepository().Save(ctx, flow))
	require.NoError(t, p.FlowRepository().Delete(ctx, flow.ID))

	_, err := p.FlowRepository().GetByID(ctx, flow.ID)
	assert.True(t, persistence.IsFlowNotFound(err))

	// Deleting again is a no-op.
	assert.NoError(t, p.FlowRepository().Delete(ctx, flow.ID))
}

func TestFlowRepository_ListFlows(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())
	ctx := context.Background()

	names := []string{"Alpha", "Beta", "Gamma"}
	for _, name := range names {
		flow := newTestFlow(name)
		if name == "Gamma" {
			flow.Status = models.FlowStatusPublished
			flow.Owner = "carol"
		}

		require.NoError(t, p.FlowRepository().Save(ctx, flow))
	}

	result, err := p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{
		SortBy:    "name",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalCount)
	assert.False(t, result.HasNextPage)
	assert.Equal(t, "Alpha", result.Flows[0].Name)

	published := models.FlowStatusPublished
	result, err = p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{Status: &published})
	require.NoError(t, err)
	require.Len(t, result.Flows, 1)
	assert.Equal(t, "Gamma", result.Flows[0].Name)

	result, err = p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{Owner: "carol"})
	require.NoError(t, err)
	require.Len(t, result.Flows, 1)

	_, err = p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{SortBy: "owner"})
	assert.Error(t, err)
}

func TestFlowRepository_ListFlowsPagination(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.FlowRepository().Save(ctx, newTestFlow("Flow")))
	}

	result, err := p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Flows, 2)
	assert.Equal(t, int64(5), result.TotalCount)
	assert.True(t, result.HasNextPage)

	result, err = p.FlowRepository().ListFlows(ctx, persistence.ListFlowsOptions{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, result.Flows, 1)
	assert.False(t, result.HasNextPage)
}

func TestNodeRepository_Lifecycle(t *testing.T) {
	t.Parallel()

	p := file.NewPersistence(t.TempDir())
	ctx := context.Background()

	flow := newTestFlow("Node Home")
	require.NoError(t, p.FlowRepository().Save(ctx, flow))

	nodes := p.NodeRepository()

	// Add a second node.
	require.NoError(t, nodes.SaveNode(ctx, flow.ID, &models.FlowNode{
		ID:      "quote-1",
		Type:    "quote",
		Name:    "Rate Display",
		Config:  map[string]any{"decimals": float64(4)},
		Enabled: true,
	}))

	list, err := nodes.GetNodesByFlow(ctx, flow.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Update in place.
	require.NoError(t, nodes.SaveNode(ctx, flow.ID, &models.FlowNode{
		ID:      "quote-1",
		Type:    "quote",
		Name:    "Renamed",
		Enabled: true,
	}))

	node, err := nodes.GetNodeByFlow(ctx, flow.ID, "quote-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", node.Name)

	require.NoError(t, nodes.DeleteNode(ctx, flow.ID, "quote-1"))

	_, err = nodes.GetNodeByFlow(ctx, flow.ID, "quote-1")
	assert.True(t, persistence.IsNodeNotFound(err))

	err = nodes.DeleteNode(ctx, flow.ID, "quote-1")
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestPersistence_HealthCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := file.NewPersistence("file://" + dir)

	assert.NoError(t, p.HealthCheck(context.Background()))
	assert.NoError(t, p.Close(context.Background()))

	missing := file.NewPersistence(dir + "/does-not-exist")
	assert.Error(t, missing.HealthCheck(context.Background()))
}
