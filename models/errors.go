package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateTeam is returned when a team role is registered twice in one guild
	ErrDuplicateTeam = errors.New("team with this role already exists")

	// ErrDuplicateRingRole is returned when a ring role is registered twice in one guild
	ErrDuplicateRingRole = errors.New("this role is already a ring role")

	ErrInvalidGuildID   = errors.New("invalid guild ID")
	ErrInvalidTeam      = errors.New("invalid team")
	ErrInvalidRosterCap = errors.New("roster cap must be a positive integer")
	ErrInvalidConfigKey = errors.New("invalid config key")
	ErrInvalidRoleID    = errors.New("invalid role ID")

	// ErrCorruptDocument marks stored data that parses but breaks the data model.
	// It is a storage failure, never a problem with the caller's input.
	ErrCorruptDocument = errors.New("stored document is invalid")

	// ErrNoTeam and ErrMultipleTeams come from resolving a caller's single team
	ErrNoTeam        = errors.New("no team role held")
	ErrMultipleTeams = errors.New("more than one team role held")
)

// ValidateGuildID rejects empty guild identifiers
func ValidateGuildID(guildID string) error {
	if strings.TrimSpace(guildID) == "" {
		return fmt.Errorf("%w: guild ID is required", ErrInvalidGuildID)
	}
	return nil
}
