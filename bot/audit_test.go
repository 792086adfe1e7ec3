package bot

import (
	"testing"

	"helix/events"
	"helix/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatAuditLine(t *testing.T) {
	tests := []struct {
		name     string
		event    events.Event
		expected string
	}{
		{"config created", events.GuildConfigCreatedEvent{GuildID: "g"}, "🛠️ League configuration created"},
		{
			"config updated",
			events.GuildConfigUpdatedEvent{
				GuildID:          "g",
				RoleKeys:         []string{"commissioner", "head coach"},
				ChannelKeys:      []string{"logs"},
				RosterCapChanged: true,
				RosterCap:        models.IntPtr(15),
			},
			"🛠️ League configuration updated (roles: commissioner, head coach; channels: logs; roster cap: 15)",
		},
		{
			"roster cap cleared",
			events.GuildConfigUpdatedEvent{GuildID: "g", RosterCapChanged: true},
			"🛠️ League configuration updated (roster cap: Unlimited)",
		},
		{
			"settings updated",
			events.GuildConfigUpdatedEvent{GuildID: "g", FieldKeys: []string{"seasonName", "week"}},
			"🛠️ League configuration updated (settings: seasonName, week)",
		},
		{"team added", events.TeamAddedEvent{GuildID: "g", RoleID: "1", Emoji: "🐻"}, "🏈 Team added: 🐻 <@&1>"},
		{"team removed", events.TeamRemovedEvent{GuildID: "g", RoleID: "1"}, "🏈 Team removed: <@&1>"},
		{"ring added", events.RingRoleAddedEvent{GuildID: "g", RoleID: "9"}, "💍 Ring role added: <@&9>"},
		{"ring removed", events.RingRoleRemovedEvent{GuildID: "g", RoleID: "9"}, "💍 Ring role removed: <@&9>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAuditLine(tt.event))
		})
	}
}
