package messaging

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohub/hydration-hub/internal/domain/shared"
)

func newSyncBus() *InMemoryEventBus {
	return NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode: false,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestInMemoryEventBus_Subscribe(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var got []shared.Event
	require.NoError(t, bus.Subscribe(shared.EventLevelUp, func(e shared.Event) error {
		got = append(got, e)
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewLevelUpEvent("profile-default", 1, 2, 500)))
	require.NoError(t, bus.Publish(shared.NewCharacterUnlockedEvent("char-sprout")))

	require.Len(t, got, 1, "only the subscribed type is delivered")
	assert.Equal(t, shared.EventLevelUp, got[0].EventType())
}

func TestInMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var count int
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		count++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewCharacterUnlockedEvent("char-owl")))
	require.NoError(t, bus.Publish(shared.NewIntakeDeletedEvent("intake-1")))

	assert.Equal(t, 2, count)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var delivered bool
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		return assert.AnError
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		delivered = true
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewCharacterUnlockedEvent("char-whale")))
	assert.True(t, delivered)
}

func TestInMemoryEventBus_Close(t *testing.T) {
	bus := newSyncBus()
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(shared.NewIntakeDeletedEvent("intake-1")), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventLevelUp, func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)

	// Closing twice is a no-op.
	assert.NoError(t, bus.Close())
}

func TestInMemoryEventBus_Async(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 2,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	var mu sync.Mutex
	count := 0
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(shared.NewCharacterUnlockedEvent("char-sprout")))
	}

	// Close waits for in-flight handlers.
	require.NoError(t, bus.Close())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestInMemoryEventBus_CloseDrainsAcceptedEvents(t *testing.T) {
	// One worker and a slow handler force most publishes to queue behind
	// the pool, so the drain guarantee is what delivers them.
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 1,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	var mu sync.Mutex
	count := 0
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))

	for i := 0; i < 8; i++ {
		require.NoError(t, bus.Publish(shared.NewCharacterUnlockedEvent("char-owl")))
	}
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 8, count, "every accepted event is handled before Close returns")
}

func TestBreakerSink_SwallowsPublishFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus := newSyncBus()
	require.NoError(t, bus.Close())

	sink := NewBreakerSink(bus, logger)
	// Reward dispatch is fire-and-forget; a dead bus must not surface.
	for i := 0; i < 10; i++ {
		assert.NoError(t, sink.Publish(shared.NewCharacterUnlockedEvent("char-owl")))
	}
}
