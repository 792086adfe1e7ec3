package service

import (
	"context"
	"encoding/json"

	"helix/events"
	"helix/models"
)

// DocumentStore persists one collection of per-guild JSON entries.
// Implementations must make each Put atomic with respect to other Puts on the same store.
type DocumentStore interface {
	// Get returns the raw entry for a guild and whether it exists
	Get(ctx context.Context, guildID string) (json.RawMessage, bool, error)

	// Put writes the raw entry for a guild, replacing any previous value
	Put(ctx context.Context, guildID string, value json.RawMessage) error

	// Load returns the whole collection, creating an empty one if none exists
	Load(ctx context.Context) (models.Document, error)

	// Save replaces the whole collection
	Save(ctx context.Context, doc models.Document) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork scopes a load-mutate-save cycle. While it is begun no other unit of work
// for the same guild (or any guild, for an exclusive one) can run.
type UnitOfWork interface {
	// Begin acquires the scope's lock, waiting until ctx is done
	Begin(ctx context.Context) error

	// Commit releases the lock and flushes pending events
	Commit() error

	// Rollback releases the lock and discards pending events. No-op after Commit.
	Rollback() error

	GuildConfigStore() DocumentStore
	TeamStore() DocumentStore
	RingRoleStore() DocumentStore

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	// CreateForGuild creates a unit of work serialized against other work on guildID
	CreateForGuild(guildID string) UnitOfWork

	// CreateExclusive creates a unit of work serialized against all guilds, for whole-document access
	CreateExclusive() UnitOfWork
}

// GuildConfigService is the guild configuration registry
type GuildConfigService interface {
	// EnsureGuildConfig returns the guild's config, persisting the blank template on first access
	EnsureGuildConfig(ctx context.Context, guildID string) (*models.GuildConfig, error)

	// UpdateGuildConfig merges a partial update into the guild's config and persists it
	UpdateGuildConfig(ctx context.Context, guildID string, update models.GuildConfigUpdate) (*models.GuildConfig, error)

	// LoadConfig returns every guild's config
	LoadConfig(ctx context.Context) (models.ConfigDocument, error)

	// SaveConfig replaces the whole configuration document
	SaveConfig(ctx context.Context, doc models.ConfigDocument) error
}

// TeamService is the team registry
type TeamService interface {
	// EnsureGuildTeams returns the guild's team list, persisting an empty one on first access
	EnsureGuildTeams(ctx context.Context, guildID string) (*models.GuildTeams, error)

	// GetTeams returns the guild's teams; an unknown guild has none
	GetTeams(ctx context.Context, guildID string) ([]models.Team, error)

	// AddTeam registers a team, failing with models.ErrDuplicateTeam if its role is taken
	AddTeam(ctx context.Context, guildID string, team models.Team) error

	// RemoveTeam removes the team registered under roleID and reports whether one was found
	RemoveTeam(ctx context.Context, guildID string, roleID string) (bool, error)

	// LoadTeams returns every guild's team list
	LoadTeams(ctx context.Context) (models.TeamsDocument, error)

	// SaveTeams replaces the whole teams document
	SaveTeams(ctx context.Context, doc models.TeamsDocument) error
}

// RingRoleService is the championship ring role registry
type RingRoleService interface {
	GetRingRoles(ctx context.Context, guildID string) (models.RingRoles, error)

	// AddRingRole registers a ring role, failing with models.ErrDuplicateRingRole if present
	AddRingRole(ctx context.Context, guildID string, roleID string) error

	// RemoveRingRole removes a ring role and reports whether it was registered
	RemoveRingRole(ctx context.Context, guildID string, roleID string) (bool, error)
}
