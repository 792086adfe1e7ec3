package common

import (
	"fmt"
	"strings"
	"time"
)

// NotSet is shown for an unconfigured role or channel
const NotSet = "Not set"

// RoleMention formats a role ID as a Discord role mention
func RoleMention(roleID string) string {
	return "<@&" + roleID + ">"
}

// ChannelMention formats a channel ID as a Discord channel mention
func ChannelMention(channelID string) string {
	return "<#" + channelID + ">"
}

// UserMention formats a user ID as a Discord user mention
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// FormatOptionalRole formats a configured role slot
func FormatOptionalRole(roleID *string) string {
	if roleID == nil || *roleID == "" {
		return NotSet
	}
	return RoleMention(*roleID)
}

// FormatOptionalChannel formats a configured channel slot
func FormatOptionalChannel(channelID *string) string {
	if channelID == nil || *channelID == "" {
		return NotSet
	}
	return ChannelMention(*channelID)
}

// FormatRosterCap formats a roster cap, nil meaning unlimited
func FormatRosterCap(rosterCap *int) string {
	if rosterCap == nil {
		return "Unlimited"
	}
	return fmt.Sprintf("%d", *rosterCap)
}

// TitleCase upper-cases the first letter of each word in a config key
func TitleCase(key string) string {
	words := strings.Fields(key)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
