package models

import (
	"encoding/json"
	"fmt"
)

// RingRoles is a guild's list of championship ring role IDs, stored as a bare JSON array
type RingRoles []string

// Contains reports whether roleID is registered as a ring role
func (r RingRoles) Contains(roleID string) bool {
	for _, id := range r {
		if id == roleID {
			return true
		}
	}
	return false
}

// DecodeRingRoles parses one stored guild entry
func DecodeRingRoles(guildID string, data []byte) (RingRoles, error) {
	var roles RingRoles
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("failed to decode ring roles for guild %s: %w", guildID, err)
	}
	if roles == nil {
		roles = RingRoles{}
	}
	return roles, nil
}
