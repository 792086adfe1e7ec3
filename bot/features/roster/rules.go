package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"helix/bot/common"
	"helix/models"
	"helix/permissions"
)

var (
	ErrNotCoachingStaff  = errors.New("only coaching staff can use this command")
	ErrTargetOnTeam      = errors.New("that user already has a team role")
	ErrTargetSuspended   = errors.New("that user is suspended")
	ErrTargetBlacklisted = errors.New("that user is blacklisted")
	ErrRosterFull        = errors.New("your roster is full")
	ErrNotOnYourTeam     = errors.New("that player is not on your team")

	ErrNotFranchiseOwner = errors.New("only franchise owners can use this command")
	ErrNotAPosition      = errors.New("that is not a coaching position")
	ErrPositionNotSet    = errors.New("that position's role is not set up yet")
	ErrAlreadyInPosition = errors.New("that player already holds this position")
	ErrNoCoachingRoles   = errors.New("that player has no coaching roles to remove")
)

// CheckSigning decides whether caller may sign target onto the caller's team.
// rosterSize reports how many members currently hold a team role.
func CheckSigning(cfg *models.GuildConfig, teams []models.Team, caller, target permissions.RoleSet, rosterSize func(roleID string) (int, error)) (models.Team, error) {
	if !permissions.HasAnyCapability(caller, cfg, permissions.CoachingStaff) {
		return models.Team{}, ErrNotCoachingStaff
	}

	team, err := permissions.SoleTeam(caller, teams)
	if err != nil {
		return models.Team{}, err
	}

	if len(permissions.TeamsOf(target, teams)) > 0 {
		return models.Team{}, ErrTargetOnTeam
	}
	if permissions.HasCapability(target, cfg, models.RoleSuspended) {
		return models.Team{}, ErrTargetSuspended
	}
	if permissions.HasCapability(target, cfg, models.RoleBlacklisted) {
		return models.Team{}, ErrTargetBlacklisted
	}

	size, err := rosterSize(team.RoleID)
	if err != nil {
		return models.Team{}, err
	}
	if !permissions.RosterHasRoom(cfg, size) {
		return models.Team{}, ErrRosterFull
	}
	return team, nil
}

// CheckRelease decides whether caller may release target, returning the team they share
func CheckRelease(cfg *models.GuildConfig, teams []models.Team, caller, target permissions.RoleSet) (models.Team, error) {
	if !permissions.HasAnyCapability(caller, cfg, permissions.CoachingStaff) {
		return models.Team{}, ErrNotCoachingStaff
	}
	if len(permissions.TeamsOf(caller, teams)) == 0 {
		return models.Team{}, models.ErrNoTeam
	}

	team, ok := permissions.SharedTeam(caller, target, teams)
	if !ok {
		return models.Team{}, ErrNotOnYourTeam
	}
	return team, nil
}

// ReleaseRoles lists the configured coaching roles target holds, followed by the team role.
// Removing them all takes the player off the team and out of its staff.
func ReleaseRoles(cfg *models.GuildConfig, target permissions.RoleSet, team models.Team) []string {
	var roles []string
	for _, key := range permissions.CoachingStaff {
		if permissions.HasCapability(target, cfg, key) {
			id, _ := cfg.Role(key)
			roles = append(roles, id)
		}
	}
	return append(roles, team.RoleID)
}

// CheckPromotion decides whether caller may give target the coaching position,
// returning the team they share and the position's role ID
func CheckPromotion(cfg *models.GuildConfig, teams []models.Team, caller, target permissions.RoleSet, position models.RoleKey) (models.Team, string, error) {
	team, err := checkOwnerOf(cfg, teams, caller, target)
	if err != nil {
		return models.Team{}, "", err
	}

	if !slices.Contains(permissions.CoachingStaff, position) {
		return models.Team{}, "", ErrNotAPosition
	}
	roleID, ok := cfg.Role(position)
	if !ok {
		return models.Team{}, "", ErrPositionNotSet
	}
	if target.Has(roleID) {
		return models.Team{}, "", ErrAlreadyInPosition
	}
	return team, roleID, nil
}

// CheckDemotion decides whether caller may strip target's coaching roles,
// returning the team they share and the role IDs to remove
func CheckDemotion(cfg *models.GuildConfig, teams []models.Team, caller, target permissions.RoleSet) (models.Team, []string, error) {
	team, err := checkOwnerOf(cfg, teams, caller, target)
	if err != nil {
		return models.Team{}, nil, err
	}

	roles := ReleaseRoles(cfg, target, team)
	roles = roles[:len(roles)-1]
	if len(roles) == 0 {
		return models.Team{}, nil, ErrNoCoachingRoles
	}
	return team, roles, nil
}

// checkOwnerOf requires a franchise owner who shares a team with target
func checkOwnerOf(cfg *models.GuildConfig, teams []models.Team, caller, target permissions.RoleSet) (models.Team, error) {
	if !permissions.HasCapability(caller, cfg, models.RoleFranchiseOwner) {
		return models.Team{}, ErrNotFranchiseOwner
	}
	if len(permissions.TeamsOf(caller, teams)) == 0 {
		return models.Team{}, models.ErrNoTeam
	}
	team, ok := permissions.SharedTeam(caller, target, teams)
	if !ok {
		return models.Team{}, ErrNotOnYourTeam
	}
	return team, nil
}

// StaffTitle names the first team staff position member holds, or "" for a player
func StaffTitle(cfg *models.GuildConfig, member permissions.RoleSet) string {
	for _, key := range permissions.TeamStaff {
		if permissions.HasCapability(member, cfg, key) {
			return common.TitleCase(string(key))
		}
	}
	return ""
}

// RosterEntry is a member's roster line name, with their staff position when they hold one
func RosterEntry(cfg *models.GuildConfig, name string, member permissions.RoleSet) string {
	if title := StaffTitle(cfg, member); title != "" {
		return fmt.Sprintf("%s (%s)", name, title)
	}
	return name
}

var ruleErrors = []error{
	ErrNotCoachingStaff,
	ErrTargetOnTeam,
	ErrTargetSuspended,
	ErrTargetBlacklisted,
	ErrRosterFull,
	ErrNotOnYourTeam,
	ErrNotFranchiseOwner,
	ErrNotAPosition,
	ErrPositionNotSet,
	ErrAlreadyInPosition,
	ErrNoCoachingRoles,
}

func isRuleError(err error) bool {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return errors.Is(err, models.ErrNoTeam) || errors.Is(err, models.ErrMultipleTeams)
}

// Describe turns a rules error into the message shown to the caller
func Describe(err error) string {
	switch {
	case errors.Is(err, models.ErrNoTeam):
		return "You do not have a team role assigned"
	case errors.Is(err, models.ErrMultipleTeams):
		return "You hold more than one team role; ask a commissioner to fix your roles"
	case isRuleError(err):
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:]
	default:
		return "Something went wrong, please try again"
	}
}
