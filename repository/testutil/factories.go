package testutil

import (
	"encoding/json"
	"fmt"

	"helix/models"
)

// CreateTestGuildConfig creates a blank config with the given roles set
func CreateTestGuildConfig(guildID string, roles map[models.RoleKey]string) *models.GuildConfig {
	cfg := models.NewGuildConfig(guildID)
	for key, id := range roles {
		cfg.Roles[key] = models.StringPtr(id)
	}
	return cfg
}

// CreateTestTeam creates a team whose emoji is derived from the role ID
func CreateTestTeam(roleID string) models.Team {
	return models.Team{
		RoleID: roleID,
		Emoji:  fmt.Sprintf("<:t%s:%s>", roleID, roleID),
	}
}

// CreateTestGuildTeams creates a team list with one team per role ID
func CreateTestGuildTeams(roleIDs ...string) *models.GuildTeams {
	teams := models.NewGuildTeams()
	for _, id := range roleIDs {
		teams.Teams = append(teams.Teams, CreateTestTeam(id))
	}
	return teams
}

// MustRaw encodes v for use as a stored document entry, panicking on failure
func MustRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
