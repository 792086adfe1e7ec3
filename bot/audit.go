package bot

import (
	"context"
	"fmt"
	"strings"

	"helix/bot/common"
	"helix/events"
	"helix/models"

	log "github.com/sirupsen/logrus"
)

// formatAuditLine renders a registry event for the guild's logs channel
func formatAuditLine(event events.Event) string {
	switch e := event.(type) {
	case events.GuildConfigCreatedEvent:
		return "🛠️ League configuration created"
	case events.GuildConfigUpdatedEvent:
		var parts []string
		if len(e.RoleKeys) > 0 {
			parts = append(parts, "roles: "+strings.Join(e.RoleKeys, ", "))
		}
		if len(e.ChannelKeys) > 0 {
			parts = append(parts, "channels: "+strings.Join(e.ChannelKeys, ", "))
		}
		if len(e.FieldKeys) > 0 {
			parts = append(parts, "settings: "+strings.Join(e.FieldKeys, ", "))
		}
		if e.RosterCapChanged {
			parts = append(parts, "roster cap: "+common.FormatRosterCap(e.RosterCap))
		}
		return "🛠️ League configuration updated (" + strings.Join(parts, "; ") + ")"
	case events.TeamAddedEvent:
		return fmt.Sprintf("🏈 Team added: %s %s", e.Emoji, common.RoleMention(e.RoleID))
	case events.TeamRemovedEvent:
		return fmt.Sprintf("🏈 Team removed: %s", common.RoleMention(e.RoleID))
	case events.RingRoleAddedEvent:
		return fmt.Sprintf("💍 Ring role added: %s", common.RoleMention(e.RoleID))
	case events.RingRoleRemovedEvent:
		return fmt.Sprintf("💍 Ring role removed: %s", common.RoleMention(e.RoleID))
	default:
		return fmt.Sprintf("ℹ️ %s", event.Type())
	}
}

// handleAuditEvent posts registry changes to the guild's logs channel when one is configured
func (b *Bot) handleAuditEvent(ctx context.Context, event events.Event) {
	cfg, err := b.configService.EnsureGuildConfig(ctx, event.Guild())
	if err != nil {
		log.WithError(err).WithField("guildID", event.Guild()).Error("Failed to load config for audit log")
		return
	}

	channelID, ok := cfg.Channel(models.ChannelLogs)
	if !ok {
		return
	}

	if _, err := b.session.ChannelMessageSend(channelID, formatAuditLine(event)); err != nil {
		log.WithFields(log.Fields{
			"guildID":   event.Guild(),
			"channelID": channelID,
			"eventType": event.Type(),
		}).WithError(err).Error("Failed to post audit log")
	}
}
