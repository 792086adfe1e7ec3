package setup

import (
	"fmt"
	"strings"
	"time"

	"helix/bot/common"
	"helix/models"

	"github.com/bwmarrin/discordgo"
)

// BuildAutoSetupEmbed summarizes what auto setup bound
func BuildAutoSetupEmbed(result AutoSetupResult) *discordgo.MessageEmbed {
	channels := "_No channels matched_"
	if len(result.MatchedChannels) > 0 {
		channels = strings.Join(result.MatchedChannels, "\n")
	}
	roles := "_No roles matched_"
	if len(result.MatchedRoles) > 0 {
		roles = strings.Join(result.MatchedRoles, "\n")
	}

	return &discordgo.MessageEmbed{
		Title: "🛠️ Auto Setup Complete",
		Color: common.ColorSuccess,
		Description: strings.Join([]string{
			"**Channels Configured:**",
			channels,
			"",
			"**Roles Configured:**",
			roles,
		}, "\n"),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildConfigEmbed shows every recognized slot of a guild's configuration
func BuildConfigEmbed(cfg *models.GuildConfig) *discordgo.MessageEmbed {
	var roleLines []string
	for _, key := range models.RoleKeys() {
		roleLines = append(roleLines, fmt.Sprintf("**%s:** %s",
			common.TitleCase(string(key)), common.FormatOptionalRole(cfg.Roles[key])))
	}

	var channelLines []string
	for _, key := range models.ChannelKeys() {
		channelLines = append(channelLines, fmt.Sprintf("**%s:** %s",
			common.TitleCase(string(key)), common.FormatOptionalChannel(cfg.Channels[key])))
	}

	return &discordgo.MessageEmbed{
		Title: "⚙️ League Configuration",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Roster Cap", Value: common.FormatRosterCap(cfg.RosterCap)},
			{Name: "Roles", Value: strings.Join(roleLines, "\n")},
			{Name: "Channels", Value: strings.Join(channelLines, "\n")},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
