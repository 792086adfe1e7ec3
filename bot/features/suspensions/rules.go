package suspensions

import (
	"helix/bot/common"
	"helix/models"
	"helix/permissions"
)

// officialsGroup is how the Officials capability group is named to callers
const officialsGroup = "referee or commissioner"

// CheckSuspension decides whether caller may suspend target, or lift target's suspension.
// It returns the suspended role ID to grant or revoke, or the message explaining the refusal.
func CheckSuspension(cfg *models.GuildConfig, caller, target permissions.RoleSet, lift bool) (string, string) {
	if denial := common.GroupDenial(caller, cfg, permissions.Officials, officialsGroup); denial != "" {
		return "", denial
	}

	roleID, ok := cfg.Role(models.RoleSuspended)
	if !ok {
		return "", "The suspended role is not set up yet"
	}

	switch {
	case lift && !target.Has(roleID):
		return "", "That user is not suspended"
	case !lift && target.Has(roleID):
		return "", "That user is already suspended"
	case !lift && permissions.HasAnyCapability(target, cfg, permissions.Officials):
		return "", "League officials cannot be suspended"
	}
	return roleID, ""
}
