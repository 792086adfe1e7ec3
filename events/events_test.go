package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDelivery tests the flow from TransactionalBus to the main Bus
func TestEventDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan TeamAddedEvent, 1)
	mainBus.Subscribe(EventTypeTeamAdded, func(ctx context.Context, event Event) {
		if teamEvent, ok := event.(TeamAddedEvent); ok {
			eventReceived <- teamEvent
		} else {
			t.Errorf("Expected TeamAddedEvent, got %T", event)
		}
	})

	testEvent := TeamAddedEvent{GuildID: "G1", RoleID: "R1", Emoji: "🦁"}
	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	require.NoError(t, transactionalBus.Flush(context.Background()))
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var mu sync.Mutex
	var received []string
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeTeamRemoved, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event.(TeamRemovedEvent).RoleID)
	})

	for _, roleID := range []string{"R1", "R2", "R3"} {
		transactionalBus.Publish(TeamRemovedEvent{GuildID: "G1", RoleID: roleID})
	}
	require.NoError(t, transactionalBus.Flush(context.Background()))

	wg.Wait()
	assert.ElementsMatch(t, []string{"R1", "R2", "R3"}, received)
}

func TestDiscardDropsPendingEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	called := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypeGuildConfigCreated, func(ctx context.Context, event Event) {
		called <- struct{}{}
	})

	transactionalBus.Publish(GuildConfigCreatedEvent{GuildID: "G1"})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-called:
		t.Fatal("discarded event was delivered")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeAllReceivesEveryType(t *testing.T) {
	mainBus := NewBus()

	var wg sync.WaitGroup
	wg.Add(len(AllEventTypes()))
	seen := make(chan EventType, len(AllEventTypes()))
	mainBus.SubscribeAll(func(ctx context.Context, event Event) {
		defer wg.Done()
		seen <- event.Type()
	})

	ctx := context.Background()
	mainBus.Emit(ctx, GuildConfigCreatedEvent{GuildID: "G"})
	mainBus.Emit(ctx, GuildConfigUpdatedEvent{GuildID: "G"})
	mainBus.Emit(ctx, TeamAddedEvent{GuildID: "G"})
	mainBus.Emit(ctx, TeamRemovedEvent{GuildID: "G"})
	mainBus.Emit(ctx, RingRoleAddedEvent{GuildID: "G"})
	mainBus.Emit(ctx, RingRoleRemovedEvent{GuildID: "G"})

	wg.Wait()
	close(seen)
	var types []EventType
	for et := range seen {
		types = append(types, et)
	}
	assert.ElementsMatch(t, AllEventTypes(), types)
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	mainBus := NewBus()

	done := make(chan struct{}, 1)
	mainBus.Subscribe(EventTypeTeamAdded, func(ctx context.Context, event Event) {
		panic("boom")
	})
	mainBus.Subscribe(EventTypeTeamAdded, func(ctx context.Context, event Event) {
		done <- struct{}{}
	})

	mainBus.Emit(context.Background(), TeamAddedEvent{GuildID: "G1", RoleID: "R1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}
