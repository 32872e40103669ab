package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dexforge/dexforge/pkg/channels/gochannel"
	"github.com/dexforge/dexforge/pkg/eventbus"
	"github.com/dexforge/dexforge/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	return eventbus.NewWatermillEventBus(pub, sub)
}

func TestWatermillEventBus_PublishAndSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *events.FlowCreated, 1)

	err := bus.Handle(events.FlowCreatedEvent, func(_ context.Context, event any) error {
		created, ok := event.(*events.FlowCreated)
		require.True(t, ok)
		received <- created

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	event := events.FlowCreated{
		BaseEvent: events.NewBaseEvent(events.FlowCreatedEvent, "flow-1"),
		Name:      "Swap App",
		Owner:     "alice",
	}
	require.NoError(t, bus.Publish(ctx, "flow-1", event))

	select {
	case got := <-received:
		assert.Equal(t, "flow-1", got.FlowID)
		assert.Equal(t, "Swap App", got.Name)
		assert.Equal(t, events.FlowCreatedEvent, got.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypeIsAcked(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *events.NodeRemoved, 1)

	err := bus.Handle(events.NodeRemovedEvent, func(_ context.Context, event any) error {
		received <- event.(*events.NodeRemoved)

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for this one; it must not block the stream.
	require.NoError(t, bus.Publish(ctx, "flow-1", events.FlowDeleted{
		BaseEvent: events.NewBaseEvent(events.FlowDeletedEvent, "flow-1"),
	}))

	require.NoError(t, bus.Publish(ctx, "flow-1", events.NodeRemoved{
		BaseEvent: events.NewBaseEvent(events.NodeRemovedEvent, "flow-1"),
		NodeID:    "swap-1",
	}))

	select {
	case got := <-received:
		assert.Equal(t, "swap-1", got.NodeID)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
