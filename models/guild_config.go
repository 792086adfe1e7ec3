package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ChannelKey names a channel slot in a guild's configuration
type ChannelKey string

const (
	ChannelMembership   ChannelKey = "membership"
	ChannelSuspensions  ChannelKey = "suspensions"
	ChannelGametimes    ChannelKey = "gametimes"
	ChannelRulebook     ChannelKey = "rulebook"
	ChannelApplications ChannelKey = "applications"
	ChannelTickets      ChannelKey = "tickets"
	ChannelTeamOwners   ChannelKey = "team owners"
	ChannelStandings    ChannelKey = "standings"
	ChannelResults      ChannelKey = "results"
	ChannelStreams      ChannelKey = "streams"
	ChannelPickups      ChannelKey = "pickups"
	ChannelTransactions ChannelKey = "transactions"
	ChannelFreeAgency   ChannelKey = "free agency"
	ChannelLogs         ChannelKey = "logs"
)

// RoleKey names a capability role slot in a guild's configuration
type RoleKey string

const (
	RoleVerified       RoleKey = "verified"
	RoleUnverified     RoleKey = "unverified"
	RoleCommissioner   RoleKey = "commissioner"
	RoleReferee        RoleKey = "referee"
	RoleStreamer       RoleKey = "streamer"
	RoleSuspended      RoleKey = "suspended"
	RoleFranchiseOwner RoleKey = "franchise owner"
	RoleGeneralManager RoleKey = "general manager"
	RoleHeadCoach      RoleKey = "head coach"
	RoleAssistantCoach RoleKey = "assistant coach"
	RoleStatManager    RoleKey = "stat manager"
	RolePickupsHoster  RoleKey = "pickups hoster"
	RoleStreamPing     RoleKey = "stream ping"
	RolePickupsPing    RoleKey = "pickups ping"
	RoleBlacklisted    RoleKey = "blacklisted"
	RoleCandidate      RoleKey = "candidate"
)

var channelKeys = []ChannelKey{
	ChannelMembership, ChannelSuspensions, ChannelGametimes, ChannelRulebook,
	ChannelApplications, ChannelTickets, ChannelTeamOwners, ChannelStandings,
	ChannelResults, ChannelStreams, ChannelPickups, ChannelTransactions,
	ChannelFreeAgency, ChannelLogs,
}

var roleKeys = []RoleKey{
	RoleVerified, RoleUnverified, RoleCommissioner, RoleReferee, RoleStreamer,
	RoleSuspended, RoleFranchiseOwner, RoleGeneralManager, RoleHeadCoach,
	RoleAssistantCoach, RoleStatManager, RolePickupsHoster, RoleStreamPing,
	RolePickupsPing, RoleBlacklisted, RoleCandidate,
}

// ChannelKeys returns the recognized channel keys in display order
func ChannelKeys() []ChannelKey {
	return append([]ChannelKey(nil), channelKeys...)
}

// RoleKeys returns the recognized role keys in display order
func RoleKeys() []RoleKey {
	return append([]RoleKey(nil), roleKeys...)
}

// IsRecognized reports whether the key is one of the defaulted channel keys
func (k ChannelKey) IsRecognized() bool {
	for _, known := range channelKeys {
		if k == known {
			return true
		}
	}
	return false
}

// IsRecognized reports whether the key is one of the defaulted role keys
func (k RoleKey) IsRecognized() bool {
	for _, known := range roleKeys {
		if k == known {
			return true
		}
	}
	return false
}

// GuildConfig is the per-guild record of configured roles, channels and settings.
// Every recognized channel and role key is present in the maps; a nil value means unset.
type GuildConfig struct {
	GuildID   string
	RosterCap *int // nil means unlimited
	Channels  map[ChannelKey]*string
	Roles     map[RoleKey]*string

	// Extra holds the other top-level fields, carried through rewrites and set by update Fields
	Extra map[string]json.RawMessage
}

// NewGuildConfig returns the blank template for a guild: no roster cap, every key unset
func NewGuildConfig(guildID string) *GuildConfig {
	cfg := &GuildConfig{
		GuildID:  guildID,
		Channels: make(map[ChannelKey]*string, len(channelKeys)),
		Roles:    make(map[RoleKey]*string, len(roleKeys)),
	}
	cfg.fillDefaults()
	return cfg
}

// fillDefaults adds any missing recognized key as unset
func (c *GuildConfig) fillDefaults() {
	if c.Channels == nil {
		c.Channels = make(map[ChannelKey]*string, len(channelKeys))
	}
	if c.Roles == nil {
		c.Roles = make(map[RoleKey]*string, len(roleKeys))
	}
	for _, key := range channelKeys {
		if _, ok := c.Channels[key]; !ok {
			c.Channels[key] = nil
		}
	}
	for _, key := range roleKeys {
		if _, ok := c.Roles[key]; !ok {
			c.Roles[key] = nil
		}
	}
}

// Role returns the configured role ID for key, if any
func (c *GuildConfig) Role(key RoleKey) (string, bool) {
	if c == nil {
		return "", false
	}
	id := c.Roles[key]
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// Channel returns the configured channel ID for key, if any
func (c *GuildConfig) Channel(key ChannelKey) (string, bool) {
	if c == nil {
		return "", false
	}
	id := c.Channels[key]
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// Clone returns a deep copy
func (c *GuildConfig) Clone() *GuildConfig {
	if c == nil {
		return nil
	}
	out := &GuildConfig{
		GuildID:  c.GuildID,
		Channels: make(map[ChannelKey]*string, len(c.Channels)),
		Roles:    make(map[RoleKey]*string, len(c.Roles)),
	}
	if c.RosterCap != nil {
		rosterCap := *c.RosterCap
		out.RosterCap = &rosterCap
	}
	for k, v := range c.Channels {
		out.Channels[k] = cloneID(v)
	}
	for k, v := range c.Roles {
		out.Roles[k] = cloneID(v)
	}
	if len(c.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Apply merges a partial update into the config.
// The roster cap and other top-level fields are overwritten only when the update names them.
// Channel and role maps are merged key by key: keys absent from the update are kept, keys
// mapped to nil are cleared.
func (c *GuildConfig) Apply(update GuildConfigUpdate) {
	c.fillDefaults()

	if update.ClearRosterCap {
		c.RosterCap = nil
	} else if update.RosterCap != nil {
		rosterCap := *update.RosterCap
		c.RosterCap = &rosterCap
	}

	for k, v := range update.Channels {
		c.Channels[k] = cloneID(v)
	}
	for k, v := range update.Roles {
		c.Roles[k] = cloneID(v)
	}
	for k, v := range update.Fields {
		if v == nil || string(bytes.TrimSpace(v)) == "null" {
			delete(c.Extra, k)
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[k] = append(json.RawMessage(nil), v...)
	}
	if len(c.Extra) == 0 {
		c.Extra = nil
	}
}

type guildConfigJSON struct {
	RosterCap *int                   `json:"rosterCap"`
	Channels  map[ChannelKey]*string `json:"channels"`
	Roles     map[RoleKey]*string    `json:"roles"`
}

// MarshalJSON writes the stored shape: rosterCap, channels, roles and any carried-through fields
func (c GuildConfig) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		fields[k] = v
	}
	fields["rosterCap"] = c.RosterCap
	fields["channels"] = c.Channels
	fields["roles"] = c.Roles
	return json.Marshal(fields)
}

// UnmarshalJSON reads the stored shape and fills in any recognized key that is missing
func (c *GuildConfig) UnmarshalJSON(data []byte) error {
	var known guildConfigJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "rosterCap")
	delete(raw, "channels")
	delete(raw, "roles")
	delete(raw, "guildId")

	c.RosterCap = known.RosterCap
	c.Channels = known.Channels
	c.Roles = known.Roles
	c.Extra = nil
	if len(raw) > 0 {
		c.Extra = raw
	}
	c.fillDefaults()
	return nil
}

// DecodeGuildConfig parses one stored guild entry
func DecodeGuildConfig(guildID string, data []byte) (*GuildConfig, error) {
	var cfg GuildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config for guild %s: %w", guildID, err)
	}
	cfg.GuildID = guildID
	return &cfg, nil
}

// GuildConfigUpdate is a partial update to a GuildConfig.
// A nil map leaves that section untouched; a key present with a nil value clears that slot.
// Fields overwrites other top-level settings; a nil or JSON null value removes the setting.
type GuildConfigUpdate struct {
	RosterCap      *int
	ClearRosterCap bool
	Channels       map[ChannelKey]*string
	Roles          map[RoleKey]*string
	Fields         map[string]json.RawMessage
}

// reservedFields are the top-level names with dedicated update fields
var reservedFields = map[string]bool{
	"guildId":   true,
	"rosterCap": true,
	"channels":  true,
	"roles":     true,
}

// Validate checks the update before it is merged
func (u GuildConfigUpdate) Validate() error {
	if u.ClearRosterCap && u.RosterCap != nil {
		return fmt.Errorf("%w: cannot set and clear the roster cap at once", ErrInvalidRosterCap)
	}
	if u.RosterCap != nil && *u.RosterCap <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRosterCap, *u.RosterCap)
	}
	for k := range u.Channels {
		if strings.TrimSpace(string(k)) == "" {
			return fmt.Errorf("%w: empty channel key", ErrInvalidConfigKey)
		}
	}
	for k := range u.Roles {
		if strings.TrimSpace(string(k)) == "" {
			return fmt.Errorf("%w: empty role key", ErrInvalidConfigKey)
		}
	}
	for k, v := range u.Fields {
		if strings.TrimSpace(k) == "" || reservedFields[k] {
			return fmt.Errorf("%w: cannot set top-level field %q", ErrInvalidConfigKey, k)
		}
		if v != nil && !json.Valid(v) {
			return fmt.Errorf("%w: field %q is not valid JSON", ErrInvalidConfigKey, k)
		}
	}
	return nil
}

// IsEmpty reports whether applying the update would change nothing
func (u GuildConfigUpdate) IsEmpty() bool {
	return u.RosterCap == nil && !u.ClearRosterCap && len(u.Channels) == 0 && len(u.Roles) == 0 && len(u.Fields) == 0
}

// ChangedRoleKeys returns the role keys named by the update, sorted, or nil when there are none
func (u GuildConfigUpdate) ChangedRoleKeys() []string {
	if len(u.Roles) == 0 {
		return nil
	}
	keys := make([]string, 0, len(u.Roles))
	for k := range u.Roles {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// ChangedFieldKeys returns the top-level fields named by the update, sorted, or nil when there are none
func (u GuildConfigUpdate) ChangedFieldKeys() []string {
	if len(u.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(u.Fields))
	for k := range u.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChangedChannelKeys returns the channel keys named by the update, sorted, or nil when there are none
func (u GuildConfigUpdate) ChangedChannelKeys() []string {
	if len(u.Channels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(u.Channels))
	for k := range u.Channels {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// StringPtr returns a pointer to id, for building updates
func StringPtr(id string) *string {
	return &id
}

// IntPtr returns a pointer to n, for building updates
func IntPtr(n int) *int {
	return &n
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
