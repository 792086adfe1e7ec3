package models

import "encoding/json"

// Document is a whole persisted collection: one raw JSON entry per guild ID
type Document map[string]json.RawMessage

// ConfigDocument is the decoded configuration collection
type ConfigDocument map[string]*GuildConfig

// TeamsDocument is the decoded teams collection
type TeamsDocument map[string]*GuildTeams
