package service

import (
	"context"
	"encoding/json"
	"fmt"

	"helix/events"
	"helix/models"

	log "github.com/sirupsen/logrus"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(uowFactory UnitOfWorkFactory) GuildConfigService {
	return &guildConfigService{
		uowFactory: uowFactory,
	}
}

// EnsureGuildConfig retrieves the guild's config or persists the blank template if none exists
func (s *guildConfigService) EnsureGuildConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	cfg, created, err := getOrNewConfig(ctx, uow.GuildConfigStore(), guildID)
	if err != nil {
		return nil, err
	}

	if created {
		if err := putEntry(ctx, uow.GuildConfigStore(), guildID, cfg); err != nil {
			return nil, fmt.Errorf("failed to save guild config: %w", err)
		}
		uow.EventBus().Publish(events.GuildConfigCreatedEvent{GuildID: guildID})
		log.WithField("guild_id", guildID).Debug("Created guild config from template")
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return cfg, nil
}

// UpdateGuildConfig merges update into the guild's config, creating the config first if needed
func (s *guildConfigService) UpdateGuildConfig(ctx context.Context, guildID string, update models.GuildConfigUpdate) (*models.GuildConfig, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	cfg, created, err := getOrNewConfig(ctx, uow.GuildConfigStore(), guildID)
	if err != nil {
		return nil, err
	}

	if update.IsEmpty() && !created {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit unit of work: %w", err)
		}
		return cfg, nil
	}

	cfg.Apply(update)

	if err := putEntry(ctx, uow.GuildConfigStore(), guildID, cfg); err != nil {
		return nil, fmt.Errorf("failed to save guild config: %w", err)
	}

	if created {
		uow.EventBus().Publish(events.GuildConfigCreatedEvent{GuildID: guildID})
	}
	if !update.IsEmpty() {
		uow.EventBus().Publish(events.GuildConfigUpdatedEvent{
			GuildID:          guildID,
			RoleKeys:         update.ChangedRoleKeys(),
			ChannelKeys:      update.ChangedChannelKeys(),
			FieldKeys:        update.ChangedFieldKeys(),
			RosterCapChanged: update.RosterCap != nil || update.ClearRosterCap,
			RosterCap:        cfg.RosterCap,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"roles":    len(update.Roles),
		"channels": len(update.Channels),
		"fields":   len(update.Fields),
	}).Debug("Updated guild config")

	return cfg, nil
}

// LoadConfig returns every guild's config
func (s *guildConfigService) LoadConfig(ctx context.Context) (models.ConfigDocument, error) {
	uow := s.uowFactory.CreateExclusive()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	raw, err := uow.GuildConfigStore().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config document: %w", err)
	}

	doc := make(models.ConfigDocument, len(raw))
	for guildID, entry := range raw {
		cfg, err := models.DecodeGuildConfig(guildID, entry)
		if err != nil {
			return nil, err
		}
		doc[guildID] = cfg
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return doc, nil
}

// SaveConfig replaces the whole configuration document. Nil entries are dropped.
func (s *guildConfigService) SaveConfig(ctx context.Context, doc models.ConfigDocument) error {
	raw := make(models.Document, len(doc))
	for guildID, cfg := range doc {
		if cfg == nil {
			continue
		}
		data, err := json.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config for guild %s: %w", guildID, err)
		}
		raw[guildID] = data
	}

	uow := s.uowFactory.CreateExclusive()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.GuildConfigStore().Save(ctx, raw); err != nil {
		return fmt.Errorf("failed to save config document: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return nil
}

// getOrNewConfig reads the guild's config, or returns the blank template and true when absent
func getOrNewConfig(ctx context.Context, store DocumentStore, guildID string) (*models.GuildConfig, bool, error) {
	raw, ok, err := store.Get(ctx, guildID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get guild config: %w", err)
	}
	if !ok {
		return models.NewGuildConfig(guildID), true, nil
	}

	cfg, err := models.DecodeGuildConfig(guildID, raw)
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// putEntry encodes value and writes it as the guild's entry
func putEntry(ctx context.Context, store DocumentStore, guildID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode entry for guild %s: %w", guildID, err)
	}
	return store.Put(ctx, guildID, data)
}
