package permissions

import (
	"testing"

	"helix/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configWithRoles(roles map[models.RoleKey]string) *models.GuildConfig {
	cfg := models.NewGuildConfig("G1")
	for key, id := range roles {
		cfg.Roles[key] = models.StringPtr(id)
	}
	return cfg
}

func TestHasCapability(t *testing.T) {
	cfg := configWithRoles(map[models.RoleKey]string{models.RoleCommissioner: "C1"})

	tests := []struct {
		name     string
		caller   RoleSet
		cfg      *models.GuildConfig
		key      models.RoleKey
		expected bool
	}{
		{"configured and held", NewRoleSet("C1", "X"), cfg, models.RoleCommissioner, true},
		{"configured not held", NewRoleSet("X"), cfg, models.RoleCommissioner, false},
		{"unconfigured key", NewRoleSet("C1"), cfg, models.RoleReferee, false},
		{"nil config", NewRoleSet("C1"), nil, models.RoleCommissioner, false},
		{"no roles held", NewRoleSet(), cfg, models.RoleCommissioner, false},
		{"unknown key", NewRoleSet("C1"), cfg, models.RoleKey("mascot"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasCapability(tt.caller, tt.cfg, tt.key))
		})
	}
}

func TestHasCapability_UnsetDeniesEveryone(t *testing.T) {
	cfg := models.NewGuildConfig("G1")
	cfg.Roles[models.RoleReferee] = models.StringPtr("")

	// even a caller somehow holding an empty role id is refused
	caller := RoleSet{"": {}}
	for _, key := range models.RoleKeys() {
		assert.False(t, HasCapability(caller, cfg, key), key)
	}
}

func TestHasAnyCapability(t *testing.T) {
	cfg := configWithRoles(map[models.RoleKey]string{
		models.RoleHeadCoach:      "HC",
		models.RoleFranchiseOwner: "FO",
	})

	assert.True(t, HasAnyCapability(NewRoleSet("HC"), cfg, CoachingStaff))
	assert.False(t, HasAnyCapability(NewRoleSet("FO"), cfg, CoachingStaff))
	assert.True(t, HasAnyCapability(NewRoleSet("FO"), cfg, TeamStaff))
	assert.False(t, HasAnyCapability(NewRoleSet("HC"), cfg, Officials))
	assert.False(t, HasAnyCapability(NewRoleSet("HC"), cfg, nil))
}

func TestCapabilityGroups(t *testing.T) {
	assert.Equal(t, []models.RoleKey{
		models.RoleFranchiseOwner,
		models.RoleGeneralManager,
		models.RoleHeadCoach,
		models.RoleAssistantCoach,
	}, TeamStaff)
	assert.Len(t, CoachingStaff, 3, "building TeamStaff must not alter CoachingStaff")
}

func TestTeamsOf(t *testing.T) {
	teams := []models.Team{
		{RoleID: "R1", Emoji: "a"},
		{RoleID: "R2", Emoji: "b"},
		{RoleID: "R3", Emoji: "c"},
	}

	assert.Empty(t, TeamsOf(NewRoleSet("X"), teams))
	assert.Equal(t, []models.Team{teams[0], teams[2]}, TeamsOf(NewRoleSet("R3", "R1"), teams))
	assert.Empty(t, TeamsOf(NewRoleSet("R1"), nil))
}

func TestSoleTeam(t *testing.T) {
	teams := []models.Team{
		{RoleID: "R1", Emoji: "a"},
		{RoleID: "R2", Emoji: "b"},
	}

	team, err := SoleTeam(NewRoleSet("R2"), teams)
	require.NoError(t, err)
	assert.Equal(t, "R2", team.RoleID)

	_, err = SoleTeam(NewRoleSet("X"), teams)
	assert.ErrorIs(t, err, models.ErrNoTeam)

	_, err = SoleTeam(NewRoleSet("R1", "R2"), teams)
	assert.ErrorIs(t, err, models.ErrMultipleTeams)
}

func TestSharedTeam(t *testing.T) {
	teams := []models.Team{
		{RoleID: "R1", Emoji: "a"},
		{RoleID: "R2", Emoji: "b"},
	}

	team, ok := SharedTeam(NewRoleSet("R2", "R1"), NewRoleSet("R1", "R2"), teams)
	assert.True(t, ok)
	assert.Equal(t, "R1", team.RoleID, "first shared team in registry order")

	_, ok = SharedTeam(NewRoleSet("R1"), NewRoleSet("R2"), teams)
	assert.False(t, ok)
}

func TestRingCount(t *testing.T) {
	rings := models.RingRoles{"S1", "S2", "S3", "S1"}

	assert.Equal(t, 0, RingCount(NewRoleSet("X"), rings))
	assert.Equal(t, 2, RingCount(NewRoleSet("S1", "S3", "X"), rings))
	assert.Equal(t, 0, RingCount(NewRoleSet("S1"), nil))
}

func TestRosterHasRoom(t *testing.T) {
	unlimited := models.NewGuildConfig("G1")
	capped := models.NewGuildConfig("G1")
	capped.RosterCap = models.IntPtr(3)

	assert.True(t, RosterHasRoom(unlimited, 500))
	assert.True(t, RosterHasRoom(nil, 500))
	assert.True(t, RosterHasRoom(capped, 2))
	assert.False(t, RosterHasRoom(capped, 3))
	assert.False(t, RosterHasRoom(capped, 4))
}
