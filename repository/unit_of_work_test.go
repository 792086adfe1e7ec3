package repository

import (
	"context"
	"testing"
	"time"

	"helix/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_AccessorsRequireBegin(t *testing.T) {
	factory := NewUnitOfWorkFactory(NewMemoryStores(), events.NewBus())
	uow := factory.CreateForGuild("G1")

	assert.Panics(t, func() { uow.GuildConfigStore() })
	assert.Panics(t, func() { uow.TeamStore() })
	assert.Panics(t, func() { uow.RingRoleStore() })
	assert.Panics(t, func() { uow.EventBus() })
}

func TestUnitOfWork_BeginTwice(t *testing.T) {
	factory := NewUnitOfWorkFactory(NewMemoryStores(), events.NewBus())
	uow := factory.CreateForGuild("G1")

	require.NoError(t, uow.Begin(context.Background()))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(context.Background()))
}

func TestUnitOfWork_CommitWithoutBegin(t *testing.T) {
	factory := NewUnitOfWorkFactory(NewMemoryStores(), events.NewBus())
	uow := factory.CreateForGuild("G1")

	assert.Error(t, uow.Commit())
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeRingRoleAdded, func(_ context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(NewMemoryStores(), bus)
	uow := factory.CreateForGuild("G1")
	require.NoError(t, uow.Begin(context.Background()))

	uow.EventBus().Publish(events.RingRoleAddedEvent{GuildID: "G1", RoleID: "S1"})
	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback(), "rollback after commit is a no-op")

	select {
	case event := <-received:
		assert.Equal(t, events.RingRoleAddedEvent{GuildID: "G1", RoleID: "S1"}, event)
	case <-time.After(time.Second):
		t.Fatal("event not delivered after commit")
	}
}

func TestUnitOfWork_RollbackDiscardsEventsAndReleases(t *testing.T) {
	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.SubscribeAll(func(_ context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(NewMemoryStores(), bus)
	uow := factory.CreateForGuild("G1")
	require.NoError(t, uow.Begin(context.Background()))

	uow.EventBus().Publish(events.TeamRemovedEvent{GuildID: "G1", RoleID: "R1"})
	require.NoError(t, uow.Rollback())

	select {
	case event := <-received:
		t.Fatalf("rolled back event delivered: %v", event)
	case <-time.After(50 * time.Millisecond):
	}

	// the guild lock was released
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	next := factory.CreateForGuild("G1")
	require.NoError(t, next.Begin(ctx))
	require.NoError(t, next.Commit())
}

func TestUnitOfWork_ExclusiveBlocksGuilds(t *testing.T) {
	factory := NewUnitOfWorkFactory(NewMemoryStores(), events.NewBus())

	exclusive := factory.CreateExclusive()
	require.NoError(t, exclusive.Begin(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	guild := factory.CreateForGuild("G1")
	assert.ErrorIs(t, guild.Begin(ctx), context.DeadlineExceeded)

	require.NoError(t, exclusive.Commit())
	require.NoError(t, guild.Begin(context.Background()))
	require.NoError(t, guild.Commit())
}
