package common

import (
	"fmt"

	"helix/models"
	"helix/permissions"
)

// CapabilityDenial returns the message to show a caller who lacks the capability for key,
// or "" when the caller may proceed. An unconfigured role denies everyone.
func CapabilityDenial(caller permissions.RoleSet, cfg *models.GuildConfig, key models.RoleKey) string {
	if _, ok := cfg.Role(key); !ok {
		return fmt.Sprintf("The %s role is not set up yet", key)
	}
	if !permissions.HasCapability(caller, cfg, key) {
		return fmt.Sprintf("You must have the %s role to use this command", key)
	}
	return ""
}

// GroupDenial is CapabilityDenial for a group of keys, any one of which is enough
func GroupDenial(caller permissions.RoleSet, cfg *models.GuildConfig, keys []models.RoleKey, group string) string {
	configured := false
	for _, key := range keys {
		if _, ok := cfg.Role(key); ok {
			configured = true
			break
		}
	}
	if !configured {
		return fmt.Sprintf("No %s roles are set up yet", group)
	}
	if !permissions.HasAnyCapability(caller, cfg, keys) {
		return fmt.Sprintf("You must hold a %s role to use this command", group)
	}
	return ""
}
