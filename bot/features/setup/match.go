package setup

import (
	"sort"
	"strings"

	"helix/models"
)

// Candidate is a guild role or channel that auto setup may bind to a key
type Candidate struct {
	ID   string
	Name string
}

// MatchByName binds each key to the first candidate whose lower-cased name contains the
// lower-cased key. Every key is present in the result; unmatched keys map to nil.
func MatchByName[K ~string](keys []K, candidates []Candidate) map[K]*string {
	matches := make(map[K]*string, len(keys))
	for _, key := range keys {
		needle := strings.ToLower(string(key))
		matches[key] = nil
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				matches[key] = models.StringPtr(c.ID)
				break
			}
		}
	}
	return matches
}

// SortCandidates orders candidates by snowflake, oldest first
func SortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].ID, candidates[j].ID
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}

// AutoSetupResult is the update auto setup applies plus a readable summary
type AutoSetupResult struct {
	Update          models.GuildConfigUpdate
	MatchedChannels []string
	MatchedRoles    []string
}

// BuildAutoSetup matches every recognized key against the guild's channels and roles.
// The update names every key, so keys with no match are cleared.
func BuildAutoSetup(channels, roles []Candidate) AutoSetupResult {
	channelNames := namesByID(channels)
	roleNames := namesByID(roles)

	result := AutoSetupResult{
		Update: models.GuildConfigUpdate{
			Channels: MatchByName(models.ChannelKeys(), channels),
			Roles:    MatchByName(models.RoleKeys(), roles),
		},
	}

	for _, key := range models.ChannelKeys() {
		if id := result.Update.Channels[key]; id != nil {
			result.MatchedChannels = append(result.MatchedChannels,
				"✅ Channel **"+string(key)+"** -> #"+channelNames[*id])
		}
	}
	for _, key := range models.RoleKeys() {
		if id := result.Update.Roles[key]; id != nil {
			result.MatchedRoles = append(result.MatchedRoles,
				"✅ Role **"+string(key)+"** -> @"+roleNames[*id])
		}
	}
	return result
}

func namesByID(candidates []Candidate) map[string]string {
	names := make(map[string]string, len(candidates))
	for _, c := range candidates {
		names[c.ID] = c.Name
	}
	return names
}
