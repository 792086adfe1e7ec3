package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Team is a registered competitive unit in a guild, identified by its Discord role
type Team struct {
	RoleID string `json:"roleId"`
	Emoji  string `json:"emoji"`
	Name   string `json:"name,omitempty"` // display only; the role name is authoritative
}

// Validate checks the fields a team must carry before it is registered
func (t Team) Validate() error {
	if strings.TrimSpace(t.RoleID) == "" {
		return fmt.Errorf("%w: role ID is required", ErrInvalidTeam)
	}
	if strings.TrimSpace(t.Emoji) == "" {
		return fmt.Errorf("%w: emoji is required", ErrInvalidTeam)
	}
	return nil
}

// GuildTeams wraps a guild's team list as stored
type GuildTeams struct {
	Teams []Team `json:"teams"`
}

// NewGuildTeams returns an empty team list
func NewGuildTeams() *GuildTeams {
	return &GuildTeams{Teams: []Team{}}
}

// Find returns the index of the team registered under roleID, or -1
func (g *GuildTeams) Find(roleID string) int {
	for i, team := range g.Teams {
		if team.RoleID == roleID {
			return i
		}
	}
	return -1
}

// DecodeGuildTeams parses one stored guild entry. Every team must carry a roleId and an
// emoji, and no roleId may repeat.
func DecodeGuildTeams(guildID string, data []byte) (*GuildTeams, error) {
	var teams GuildTeams
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams for guild %s: %w", guildID, err)
	}
	if teams.Teams == nil {
		teams.Teams = []Team{}
	}

	seen := make(map[string]bool, len(teams.Teams))
	for i, team := range teams.Teams {
		if err := team.Validate(); err != nil {
			return nil, fmt.Errorf("%w: guild %s team %d: %w", ErrCorruptDocument, guildID, i, err)
		}
		if seen[team.RoleID] {
			return nil, fmt.Errorf("%w: guild %s role %s: %w", ErrCorruptDocument, guildID, team.RoleID, ErrDuplicateTeam)
		}
		seen[team.RoleID] = true
	}
	return &teams, nil
}
