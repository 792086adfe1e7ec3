package common

import (
	"testing"

	"helix/models"
	"helix/permissions"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityDenial(t *testing.T) {
	cfg := models.NewGuildConfig("g1")
	caller := permissions.NewRoleSet("r1")

	assert.Equal(t, "The commissioner role is not set up yet",
		CapabilityDenial(caller, cfg, models.RoleCommissioner))

	cfg.Roles[models.RoleCommissioner] = models.StringPtr("r2")
	assert.Equal(t, "You must have the commissioner role to use this command",
		CapabilityDenial(caller, cfg, models.RoleCommissioner))

	cfg.Roles[models.RoleCommissioner] = models.StringPtr("r1")
	assert.Empty(t, CapabilityDenial(caller, cfg, models.RoleCommissioner))
}

func TestGroupDenial(t *testing.T) {
	cfg := models.NewGuildConfig("g1")
	caller := permissions.NewRoleSet("hc")

	assert.Equal(t, "No coaching staff roles are set up yet",
		GroupDenial(caller, cfg, permissions.CoachingStaff, "coaching staff"))

	cfg.Roles[models.RoleGeneralManager] = models.StringPtr("gm")
	assert.Equal(t, "You must hold a coaching staff role to use this command",
		GroupDenial(caller, cfg, permissions.CoachingStaff, "coaching staff"))

	cfg.Roles[models.RoleHeadCoach] = models.StringPtr("hc")
	assert.Empty(t, GroupDenial(caller, cfg, permissions.CoachingStaff, "coaching staff"))
}
