package services_test

import (
	"context"
	"testing"

	"github.com/dexforge/dexforge/pkg/events"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/schema"
	"github.com/dexforge/dexforge/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishFixture struct {
	*nodeFixture

	publishing *services.Publishing
}

func newPublishFixture(t *testing.T) *publishFixture {
	t.Helper()

	f := newNodeFixture(t)

	return &publishFixture{
		nodeFixture: f,
		publishing:  services.NewPublishing(f.p, newTestRegistry(t), f.pub),
	}
}

func (f *publishFixture) addValidSwap(t *testing.T) *models.FlowNode {
	t.Helper()

	node, err := f.nodes.CreateNode(context.Background(), f.flow.ID, &services.CreateNodeRequest{
		Type:   "swap",
		Config: schema.Config{"apiKey": "secret"},
	})
	require.NoError(t, err)

	return node
}

func TestPublishing_PublishFlow(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	f.addValidSwap(t)

	published, err := f.publishing.PublishFlow(ctx, f.flow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FlowStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	var sawPublished bool

	for _, event := range f.pub.all() {
		if event.GetType() == events.FlowPublishedEvent {
			sawPublished = true
		}
	}

	assert.True(t, sawPublished)

	_, err = f.publishing.PublishFlow(ctx, f.flow.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyPublished)
}

func TestPublishing_EmptyFlowRejected(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)

	_, err := f.publishing.PublishFlow(context.Background(), f.flow.ID)
	assert.ErrorIs(t, err, services.ErrNodesRequired)
}

func TestPublishing_AllNodesDisabledRejected(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	node := f.addValidSwap(t)

	disabled := false
	_, err := f.nodes.UpdateNode(ctx, f.flow.ID, node.ID, &services.UpdateNodeRequest{Enabled: &disabled})
	require.NoError(t, err)

	_, err = f.publishing.PublishFlow(ctx, f.flow.ID)
	assert.ErrorIs(t, err, services.ErrNodesRequired)
}

func TestPublishing_InvalidNodeBlocksPublish(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	node := f.addValidSwap(t)

	// Corrupt the stored config behind the service's back.
	flow, err := f.p.FlowRepository().GetByID(ctx, f.flow.ID)
	require.NoError(t, err)
	flow.Nodes[0].Config["apiKey"] = ""
	require.NoError(t, f.p.FlowRepository().Save(ctx, flow))

	_, err = f.publishing.PublishFlow(ctx, f.flow.ID)
	require.Error(t, err)

	pve, ok := services.IsPublishValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "1inch API Key is required", pve.NodeErrors[node.ID]["apiKey"])

	// Still a draft.
	flow, err = f.p.FlowRepository().GetByID(ctx, f.flow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FlowStatusDraft, flow.Status)
}

func TestPublishing_BadConnectionBlocksPublish(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	node := f.addValidSwap(t)

	_, err := f.flows.UpdateFlow(ctx, f.flow.ID, services.UpdateFlowRequest{
		Connections: []*models.Connection{
			{ID: "c1", SourcePort: models.MakePortID(node.ID, "execution"), TargetPort: models.MakePortID("ghost", "pair")},
		},
	})
	require.NoError(t, err)

	_, err = f.publishing.PublishFlow(ctx, f.flow.ID)
	assert.ErrorIs(t, err, services.ErrInvalidRequest)

	// A connection into a port the template does not declare also fails.
	_, err = f.flows.UpdateFlow(ctx, f.flow.ID, services.UpdateFlowRequest{
		Connections: []*models.Connection{
			{ID: "c2", SourcePort: models.MakePortID(node.ID, "warp"), TargetPort: models.MakePortID(node.ID, "tokenIn")},
		},
	})
	require.NoError(t, err)

	_, err = f.publishing.PublishFlow(ctx, f.flow.ID)
	assert.ErrorIs(t, err, services.ErrInvalidRequest)
}

func TestPublishing_ValidateFlow(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	err := f.publishing.ValidateFlow(ctx, f.flow.ID)
	assert.ErrorIs(t, err, services.ErrNodesRequired)

	f.addValidSwap(t)
	assert.NoError(t, f.publishing.ValidateFlow(ctx, f.flow.ID))

	// Validation never mutates status.
	flow, err := f.p.FlowRepository().GetByID(ctx, f.flow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FlowStatusDraft, flow.Status)
}

func TestPublishing_ArchiveFlow(t *testing.T) {
	t.Parallel()

	f := newPublishFixture(t)
	ctx := context.Background()

	f.addValidSwap(t)

	_, err := f.publishing.PublishFlow(ctx, f.flow.ID)
	require.NoError(t, err)

	archived, err := f.publishing.ArchiveFlow(ctx, f.flow.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FlowStatusArchived, archived.Status)
}
