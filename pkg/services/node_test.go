package services_test

import (
	"context"
	"testing"

	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeFixture struct {
	flows *services.Flow
	nodes *services.Node
	pub   *recordingPublisher
	flow  *models.Flow
	p     persistence.Persistence
}

func newNodeFixture(t *testing.T) *nodeFixture {
	t.Helper()

	p := newTestPersistence(t)
	pub := &recordingPublisher{}
	flows := services.NewFlow(p, pub)
	nodes := services.NewNode(p, newTestRegistry(t), pub)

	flow, err := flows.CreateFlow(context.Background(), services.CreateFlowRequest{Name: "Canvas"})
	require.NoError(t, err)

	return &nodeFixture{flows: flows, nodes: nodes, pub: pub, flow: flow, p: p}
}

func TestNode_CreateSeedsDefaults(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)

	node, err := f.nodes.CreateNode(context.Background(), f.flow.ID, &services.CreateNodeRequest{
		Type:   "swap",
		Config: schema.Config{"apiKey": "secret"},
	})
	require.NoError(t, err)

	// Defaults fill everything the request left out.
	assert.Equal(t, "secret", node.Config["apiKey"])
	assert.Equal(t, "1", node.Config["chain"])
	assert.Equal(t, "standard", node.Config["gasPreset"])
	assert.InDelta(t, 0.1, node.Config["slippage"].(float64), 0.0001)
	assert.Equal(t, "1inch Swap", node.Name)
	assert.True(t, node.Enabled)
}

func TestNode_CreateRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)

	// Required apiKey missing from both request and defaults.
	_, err := f.nodes.CreateNode(context.Background(), f.flow.ID, &services.CreateNodeRequest{
		Type: "swap",
	})
	require.Error(t, err)

	cve, ok := services.IsConfigValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "1inch API Key is required", cve.Errors["apiKey"])
	assert.True(t, services.IsValidationError(err))
}

func TestNode_CreateUnknownTemplate(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)

	_, err := f.nodes.CreateNode(context.Background(), f.flow.ID, &services.CreateNodeRequest{
		Type: "teleporter",
	})
	assert.ErrorIs(t, err, services.ErrTemplateNotFound)
}

func TestNode_UpdateConfigValidatesAndKeepsType(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)
	ctx := context.Background()

	node, err := f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{
		Type:   "swap",
		Config: schema.Config{"apiKey": "secret"},
	})
	require.NoError(t, err)

	// Out-of-range slippage is rejected, stored config untouched.
	_, err = f.nodes.UpdateNode(ctx, f.flow.ID, node.ID, &services.UpdateNodeRequest{
		Config: schema.Config{"apiKey": "secret", "slippage": float64(80)},
	})
	require.Error(t, err)

	cve, ok := services.IsConfigValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Slippage Tolerance must be at most 50", cve.Errors["slippage"])

	stored, err := f.nodes.GetNode(ctx, f.flow.ID, node.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, stored.Config["slippage"].(float64), 0.0001)

	// Valid save goes through and keeps the node type.
	updated, err := f.nodes.UpdateNode(ctx, f.flow.ID, node.ID, &services.UpdateNodeRequest{
		Config: schema.Config{"apiKey": "secret", "slippage": float64(1.5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "swap", updated.Type)
	assert.InDelta(t, 1.5, updated.Config["slippage"].(float64), 0.0001)
}

func TestNode_UpdatePositionOnly(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)
	ctx := context.Background()

	node, err := f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{
		Type:   "quote",
		Config: schema.Config{"baseToken": "0x1111111111111111111111111111111111111111", "quoteToken": "0x2222222222222222222222222222222222222222"},
	})
	require.NoError(t, err)

	x, y := 320, 48
	updated, err := f.nodes.UpdateNode(ctx, f.flow.ID, node.ID, &services.UpdateNodeRequest{
		PositionX: &x,
		PositionY: &y,
	})
	require.NoError(t, err)
	assert.Equal(t, 320, updated.PositionX)
	assert.Equal(t, 48, updated.PositionY)
	assert.Equal(t, node.Config, updated.Config)
}

func TestNode_DeletePrunesConnections(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)
	ctx := context.Background()

	swap, err := f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{
		Type:   "swap",
		Config: schema.Config{"apiKey": "secret"},
	})
	require.NoError(t, err)

	quote, err := f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{
		Type:   "quote",
		Config: schema.Config{"baseToken": "0x1111111111111111111111111111111111111111", "quoteToken": "0x2222222222222222222222222222222222222222"},
	})
	require.NoError(t, err)

	_, err = f.flows.UpdateFlow(ctx, f.flow.ID, services.UpdateFlowRequest{
		Connections: []*models.Connection{
			{ID: "c1", SourcePort: models.MakePortID(swap.ID, "execution"), TargetPort: models.MakePortID(quote.ID, "pair")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.nodes.DeleteNode(ctx, f.flow.ID, quote.ID))

	flow, err := f.flows.FetchByID(ctx, f.flow.ID)
	require.NoError(t, err)
	assert.Empty(t, flow.Connections)
	require.Len(t, flow.Nodes, 1)
	assert.Equal(t, swap.ID, flow.Nodes[0].ID)

	err = f.nodes.DeleteNode(ctx, f.flow.ID, quote.ID)
	assert.True(t, persistence.IsNodeNotFound(err))
}

func TestNode_MutationsRejectedForPublished(t *testing.T) {
	t.Parallel()

	f := newNodeFixture(t)
	ctx := context.Background()

	node, err := f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{
		Type:   "swap",
		Config: schema.Config{"apiKey": "secret"},
	})
	require.NoError(t, err)

	flow, err := f.flows.FetchByID(ctx, f.flow.ID)
	require.NoError(t, err)
	flow.Status = models.FlowStatusPublished
	require.NoError(t, f.p.FlowRepository().Save(ctx, flow))

	_, err = f.nodes.CreateNode(ctx, f.flow.ID, &services.CreateNodeRequest{Type: "swap"})
	assert.ErrorIs(t, err, services.ErrCannotModifyPublished)

	err = f.nodes.DeleteNode(ctx, f.flow.ID, node.ID)
	assert.ErrorIs(t, err, services.ErrCannotModifyPublished)
	assert.True(t, services.IsConflictError(err))
}
