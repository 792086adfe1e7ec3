// Package permissions answers "may this caller do X" from the role IDs a caller holds and a
// guild's configuration. Every predicate is pure and fails closed: an unconfigured capability
// role grants nothing.
package permissions

import (
	"helix/models"
)

// Capability groups used by gated commands
var (
	// CoachingStaff may manage a team's roster day to day
	CoachingStaff = []models.RoleKey{
		models.RoleGeneralManager,
		models.RoleHeadCoach,
		models.RoleAssistantCoach,
	}

	// TeamStaff is the franchise owner plus coaching staff
	TeamStaff = append([]models.RoleKey{models.RoleFranchiseOwner}, CoachingStaff...)

	// Officials run games and enforce rules
	Officials = []models.RoleKey{
		models.RoleReferee,
		models.RoleCommissioner,
	}
)

// RoleSet is the set of role IDs a caller holds
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from role IDs
func NewRoleSet(roleIDs ...string) RoleSet {
	set := make(RoleSet, len(roleIDs))
	for _, id := range roleIDs {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Has reports whether roleID is held
func (s RoleSet) Has(roleID string) bool {
	if roleID == "" {
		return false
	}
	_, ok := s[roleID]
	return ok
}

// HasCapability reports whether the capability role for key is configured and held
func HasCapability(caller RoleSet, cfg *models.GuildConfig, key models.RoleKey) bool {
	roleID, ok := cfg.Role(key)
	if !ok {
		return false
	}
	return caller.Has(roleID)
}

// HasAnyCapability reports whether any of keys passes HasCapability
func HasAnyCapability(caller RoleSet, cfg *models.GuildConfig, keys []models.RoleKey) bool {
	for _, key := range keys {
		if HasCapability(caller, cfg, key) {
			return true
		}
	}
	return false
}

// TeamsOf returns every team whose role the caller holds, in registry order
func TeamsOf(caller RoleSet, teams []models.Team) []models.Team {
	var held []models.Team
	for _, team := range teams {
		if caller.Has(team.RoleID) {
			held = append(held, team)
		}
	}
	return held
}

// SoleTeam returns the caller's only team. Holding no team role gives models.ErrNoTeam and
// holding more than one gives models.ErrMultipleTeams.
func SoleTeam(caller RoleSet, teams []models.Team) (models.Team, error) {
	held := TeamsOf(caller, teams)
	switch len(held) {
	case 0:
		return models.Team{}, models.ErrNoTeam
	case 1:
		return held[0], nil
	default:
		return models.Team{}, models.ErrMultipleTeams
	}
}

// SharedTeam returns the first team, in registry order, whose role both callers hold
func SharedTeam(a, b RoleSet, teams []models.Team) (models.Team, bool) {
	for _, team := range teams {
		if a.Has(team.RoleID) && b.Has(team.RoleID) {
			return team, true
		}
	}
	return models.Team{}, false
}

// RingCount returns how many of the ring roles the caller holds
func RingCount(caller RoleSet, ringRoles models.RingRoles) int {
	count := 0
	seen := make(map[string]struct{}, len(ringRoles))
	for _, id := range ringRoles {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if caller.Has(id) {
			count++
		}
	}
	return count
}

// RosterHasRoom reports whether a team of currentSize may sign another player
func RosterHasRoom(cfg *models.GuildConfig, currentSize int) bool {
	if cfg == nil || cfg.RosterCap == nil {
		return true
	}
	return currentSize < *cfg.RosterCap
}
