package services_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/models"
	"github.com/dexforge/dexforge/pkg/persistence"
	"github.com/dexforge/dexforge/pkg/persistence/file"
	"github.com/dexforge/dexforge/pkg/registry"
	"github.com/dexforge/dexforge/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (r *recordingPublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)

	return nil
}

func (r *recordingPublisher) all() []eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]eventbus.Event(nil), r.events...)
}

func newTestPersistence(t *testing.T) persistence.Persistence {
	t.Helper()

	return file.NewPersistence(t.TempDir())
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.NewRegistry(slog.Default())
	require.NoError(t, registry.RegisterDefaultTemplates(r))

	return r
}

func TestFlow_CreateFlow(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	svc := services.NewFlow(newTestPersistence(t), pub)

	flow, err := svc.CreateFlow(context.Background(), services.CreateFlowRequest{
		Name:  "My Swap App",
		Owner: "alice",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, flow.ID)
	assert.Equal(t, models.FlowStatusDraft, flow.Status)
	assert.Empty(t, flow.Nodes)
	require.Len(t, pub.all(), 1)
}

func TestFlow_CreateFlowRequiresName(t *testing.T) {
	t.Parallel()

	svc := services.NewFlow(newTestPersistence(t), nil)

	_, err := svc.CreateFlow(context.Background(), services.CreateFlowRequest{Name: "  "})
	assert.ErrorIs(t, err, services.ErrFlowNameRequired)
}

func TestFlow_UpdateFlow(t *testing.T) {
	t.Parallel()

	svc := services.NewFlow(newTestPersistence(t), nil)
	ctx := context.Background()

	flow, err := svc.CreateFlow(ctx, services.CreateFlowRequest{Name: "Original"})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.UpdateFlow(ctx, flow.ID, services.UpdateFlowRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = svc.UpdateFlow(ctx, "missing", services.UpdateFlowRequest{Name: &name})
	assert.True(t, persistence.IsFlowNotFound(err))
}

func TestFlow_UpdateRejectedForPublished(t *testing.T) {
	t.Parallel()

	p := newTestPersistence(t)
	svc := services.NewFlow(p, nil)
	ctx := context.Background()

	flow, err := svc.CreateFlow(ctx, services.CreateFlowRequest{Name: "Frozen"})
	require.NoError(t, err)

	flow.Status = models.FlowStatusPublished
	require.NoError(t, p.FlowRepository().Save(ctx, flow))

	name := "Nope"
	_, err = svc.UpdateFlow(ctx, flow.ID, services.UpdateFlowRequest{Name: &name})
	assert.ErrorIs(t, err, services.ErrCannotModifyPublished)
}

func TestFlow_DeleteFlow(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	svc := services.NewFlow(newTestPersistence(t), pub)
	ctx := context.Background()

	flow, err := svc.CreateFlow(ctx, services.CreateFlowRequest{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFlow(ctx, flow.ID))
	assert.Len(t, pub.all(), 2)

	err = svc.DeleteFlow(ctx, flow.ID)
	assert.True(t, persistence.IsFlowNotFound(err))
}

func TestFlow_ListFlowsValidation(t *testing.T) {
	t.Parallel()

	svc := services.NewFlow(newTestPersistence(t), nil)
	ctx := context.Background()

	_, err := svc.ListFlows(ctx, services.ListFlowsRequest{SortBy: "owner"})
	assert.ErrorIs(t, err, services.ErrInvalidSortField)

	_, err = svc.ListFlows(ctx, services.ListFlowsRequest{SortOrder: "sideways"})
	assert.ErrorIs(t, err, services.ErrInvalidSortOrder)

	bogus := models.FlowStatus("bogus")
	_, err = svc.ListFlows(ctx, services.ListFlowsRequest{Status: &bogus})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	resp, err := svc.ListFlows(ctx, services.ListFlowsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalCount)
}

func TestFlow_HealthCheck(t *testing.T) {
	t.Parallel()

	svc := services.NewFlow(newTestPersistence(t), nil)

	msg, healthy := svc.HealthCheck(context.Background())
	assert.True(t, healthy)
	assert.NotEmpty(t, msg)
}
