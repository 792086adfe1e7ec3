package service

import (
	"context"
	"fmt"
	"strings"

	"helix/events"
	"helix/models"
)

// ringRoleService implements the RingRoleService interface
type ringRoleService struct {
	uowFactory UnitOfWorkFactory
}

// NewRingRoleService creates a new ring role service
func NewRingRoleService(uowFactory UnitOfWorkFactory) RingRoleService {
	return &ringRoleService{
		uowFactory: uowFactory,
	}
}

// GetRingRoles returns the guild's ring roles; an unknown guild has none
func (s *ringRoleService) GetRingRoles(ctx context.Context, guildID string) (models.RingRoles, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	roles, err := getRingRoles(ctx, uow.RingRoleStore(), guildID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return roles, nil
}

// AddRingRole registers roleID as a ring role
func (s *ringRoleService) AddRingRole(ctx context.Context, guildID string, roleID string) error {
	if err := models.ValidateGuildID(guildID); err != nil {
		return err
	}
	if strings.TrimSpace(roleID) == "" {
		return fmt.Errorf("%w: role ID is required", models.ErrInvalidRoleID)
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	roles, err := getRingRoles(ctx, uow.RingRoleStore(), guildID)
	if err != nil {
		return err
	}

	if roles.Contains(roleID) {
		return fmt.Errorf("failed to add ring role %s: %w", roleID, models.ErrDuplicateRingRole)
	}
	roles = append(roles, roleID)

	if err := putEntry(ctx, uow.RingRoleStore(), guildID, roles); err != nil {
		return fmt.Errorf("failed to save ring roles: %w", err)
	}

	uow.EventBus().Publish(events.RingRoleAddedEvent{GuildID: guildID, RoleID: roleID})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return nil
}

// RemoveRingRole removes roleID from the guild's ring roles
func (s *ringRoleService) RemoveRingRole(ctx context.Context, guildID string, roleID string) (bool, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return false, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	roles, err := getRingRoles(ctx, uow.RingRoleStore(), guildID)
	if err != nil {
		return false, err
	}

	remaining := make(models.RingRoles, 0, len(roles))
	for _, id := range roles {
		if id != roleID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == len(roles) {
		if err := uow.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit unit of work: %w", err)
		}
		return false, nil
	}

	if err := putEntry(ctx, uow.RingRoleStore(), guildID, remaining); err != nil {
		return false, fmt.Errorf("failed to save ring roles: %w", err)
	}

	uow.EventBus().Publish(events.RingRoleRemovedEvent{GuildID: guildID, RoleID: roleID})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return true, nil
}

func getRingRoles(ctx context.Context, store DocumentStore, guildID string) (models.RingRoles, error) {
	raw, ok, err := store.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ring roles: %w", err)
	}
	if !ok {
		return models.RingRoles{}, nil
	}
	return models.DecodeRingRoles(guildID, raw)
}
