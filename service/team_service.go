package service

import (
	"context"
	"encoding/json"
	"fmt"

	"helix/events"
	"helix/models"

	log "github.com/sirupsen/logrus"
)

// teamService implements the TeamService interface
type teamService struct {
	uowFactory UnitOfWorkFactory
}

// NewTeamService creates a new team service
func NewTeamService(uowFactory UnitOfWorkFactory) TeamService {
	return &teamService{
		uowFactory: uowFactory,
	}
}

// EnsureGuildTeams retrieves the guild's team list or persists an empty one
func (s *teamService) EnsureGuildTeams(ctx context.Context, guildID string) (*models.GuildTeams, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	teams, created, err := getOrNewTeams(ctx, uow.TeamStore(), guildID)
	if err != nil {
		return nil, err
	}

	if created {
		if err := putEntry(ctx, uow.TeamStore(), guildID, teams); err != nil {
			return nil, fmt.Errorf("failed to save guild teams: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return teams, nil
}

// GetTeams returns the guild's teams without writing anything
func (s *teamService) GetTeams(ctx context.Context, guildID string) ([]models.Team, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	teams, _, err := getOrNewTeams(ctx, uow.TeamStore(), guildID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return teams.Teams, nil
}

// AddTeam registers a team under its role
func (s *teamService) AddTeam(ctx context.Context, guildID string, team models.Team) error {
	if err := models.ValidateGuildID(guildID); err != nil {
		return err
	}
	if err := team.Validate(); err != nil {
		return err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	teams, _, err := getOrNewTeams(ctx, uow.TeamStore(), guildID)
	if err != nil {
		return err
	}

	if teams.Find(team.RoleID) >= 0 {
		return fmt.Errorf("failed to add team %s: %w", team.RoleID, models.ErrDuplicateTeam)
	}
	teams.Teams = append(teams.Teams, team)

	if err := putEntry(ctx, uow.TeamStore(), guildID, teams); err != nil {
		return fmt.Errorf("failed to save guild teams: %w", err)
	}

	uow.EventBus().Publish(events.TeamAddedEvent{
		GuildID: guildID,
		RoleID:  team.RoleID,
		Emoji:   team.Emoji,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"role_id":  team.RoleID,
		"teams":    len(teams.Teams),
	}).Debug("Added team")

	return nil
}

// RemoveTeam removes the team registered under roleID. Nothing is written when no team matches.
func (s *teamService) RemoveTeam(ctx context.Context, guildID string, roleID string) (bool, error) {
	if err := models.ValidateGuildID(guildID); err != nil {
		return false, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	teams, created, err := getOrNewTeams(ctx, uow.TeamStore(), guildID)
	if err != nil {
		return false, err
	}

	idx := teams.Find(roleID)
	if created || idx < 0 {
		if err := uow.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit unit of work: %w", err)
		}
		return false, nil
	}

	teams.Teams = append(teams.Teams[:idx], teams.Teams[idx+1:]...)

	if err := putEntry(ctx, uow.TeamStore(), guildID, teams); err != nil {
		return false, fmt.Errorf("failed to save guild teams: %w", err)
	}

	uow.EventBus().Publish(events.TeamRemovedEvent{GuildID: guildID, RoleID: roleID})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return true, nil
}

// LoadTeams returns every guild's team list
func (s *teamService) LoadTeams(ctx context.Context) (models.TeamsDocument, error) {
	uow := s.uowFactory.CreateExclusive()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	raw, err := uow.TeamStore().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams document: %w", err)
	}

	doc := make(models.TeamsDocument, len(raw))
	for guildID, entry := range raw {
		teams, err := models.DecodeGuildTeams(guildID, entry)
		if err != nil {
			return nil, err
		}
		doc[guildID] = teams
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return doc, nil
}

// SaveTeams replaces the whole teams document. Nil entries are dropped.
func (s *teamService) SaveTeams(ctx context.Context, doc models.TeamsDocument) error {
	raw := make(models.Document, len(doc))
	for guildID, teams := range doc {
		if teams == nil {
			continue
		}
		if teams.Teams == nil {
			teams = models.NewGuildTeams()
		}
		data, err := json.Marshal(teams)
		if err != nil {
			return fmt.Errorf("failed to encode teams for guild %s: %w", guildID, err)
		}
		raw[guildID] = data
	}

	uow := s.uowFactory.CreateExclusive()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.TeamStore().Save(ctx, raw); err != nil {
		return fmt.Errorf("failed to save teams document: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}

	return nil
}

// getOrNewTeams reads the guild's team list, or returns an empty one and true when absent
func getOrNewTeams(ctx context.Context, store DocumentStore, guildID string) (*models.GuildTeams, bool, error) {
	raw, ok, err := store.Get(ctx, guildID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get guild teams: %w", err)
	}
	if !ok {
		return models.NewGuildTeams(), true, nil
	}

	teams, err := models.DecodeGuildTeams(guildID, raw)
	if err != nil {
		return nil, false, err
	}
	return teams, false, nil
}
