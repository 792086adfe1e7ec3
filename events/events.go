package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGuildConfigCreated EventType = "guild_config_created"
	EventTypeGuildConfigUpdated EventType = "guild_config_updated"
	EventTypeTeamAdded          EventType = "team_added"
	EventTypeTeamRemoved        EventType = "team_removed"
	EventTypeRingRoleAdded      EventType = "ring_role_added"
	EventTypeRingRoleRemoved    EventType = "ring_role_removed"
)

// AllEventTypes lists every event type, for subscribers that forward everything
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeGuildConfigCreated,
		EventTypeGuildConfigUpdated,
		EventTypeTeamAdded,
		EventTypeTeamRemoved,
		EventTypeRingRoleAdded,
		EventTypeRingRoleRemoved,
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Guild() string
}

// GuildConfigCreatedEvent is emitted when a guild's blank config is first persisted
type GuildConfigCreatedEvent struct {
	GuildID string `json:"guildId"`
}

func (e GuildConfigCreatedEvent) Type() EventType { return EventTypeGuildConfigCreated }
func (e GuildConfigCreatedEvent) Guild() string   { return e.GuildID }

// GuildConfigUpdatedEvent is emitted after a partial config update is persisted
type GuildConfigUpdatedEvent struct {
	GuildID          string   `json:"guildId"`
	RoleKeys         []string `json:"roleKeys,omitempty"`
	ChannelKeys      []string `json:"channelKeys,omitempty"`
	FieldKeys        []string `json:"fieldKeys,omitempty"`
	RosterCapChanged bool     `json:"rosterCapChanged,omitempty"`
	RosterCap        *int     `json:"rosterCap,omitempty"`
}

func (e GuildConfigUpdatedEvent) Type() EventType { return EventTypeGuildConfigUpdated }
func (e GuildConfigUpdatedEvent) Guild() string   { return e.GuildID }

// TeamAddedEvent is emitted after a team is registered
type TeamAddedEvent struct {
	GuildID string `json:"guildId"`
	RoleID  string `json:"roleId"`
	Emoji   string `json:"emoji"`
}

func (e TeamAddedEvent) Type() EventType { return EventTypeTeamAdded }
func (e TeamAddedEvent) Guild() string   { return e.GuildID }

// TeamRemovedEvent is emitted after a team is removed
type TeamRemovedEvent struct {
	GuildID string `json:"guildId"`
	RoleID  string `json:"roleId"`
}

func (e TeamRemovedEvent) Type() EventType { return EventTypeTeamRemoved }
func (e TeamRemovedEvent) Guild() string   { return e.GuildID }

// RingRoleAddedEvent is emitted after a ring role is registered
type RingRoleAddedEvent struct {
	GuildID string `json:"guildId"`
	RoleID  string `json:"roleId"`
}

func (e RingRoleAddedEvent) Type() EventType { return EventTypeRingRoleAdded }
func (e RingRoleAddedEvent) Guild() string   { return e.GuildID }

// RingRoleRemovedEvent is emitted after a ring role is removed
type RingRoleRemovedEvent struct {
	GuildID string `json:"guildId"`
	RoleID  string `json:"roleId"`
}

func (e RingRoleRemovedEvent) Type() EventType { return EventTypeRingRoleRemoved }
func (e RingRoleRemovedEvent) Guild() string   { return e.GuildID }

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds the handler for every event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes() {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"guildID":      event.Guild(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so a slow Discord call never holds up a command
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until it commits.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// called after the unit of work commits
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Handlers outlive the command that raised the event
	eventCtx := context.WithoutCancel(ctx)

	if b.real != nil {
		for _, ev := range b.pending {
			b.real.Emit(eventCtx, ev)
		}
	}
	b.pending = nil
	return nil
}

// called after rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
