package teams

import (
	"fmt"
	"strings"
	"time"

	"helix/bot/common"
	"helix/models"

	"github.com/bwmarrin/discordgo"
)

// FormatTeamLine renders one registered team
func FormatTeamLine(team models.Team) string {
	line := fmt.Sprintf("%s %s", team.Emoji, common.RoleMention(team.RoleID))
	if team.Name != "" {
		line += " (" + team.Name + ")"
	}
	return line
}

// BuildTeamsEmbed lists a guild's teams in registry order
func BuildTeamsEmbed(teams []models.Team) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "🏈 League Teams",
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(teams) == 0 {
		embed.Description = "No teams registered"
		return embed
	}

	lines := make([]string, 0, len(teams))
	for _, team := range teams {
		lines = append(lines, FormatTeamLine(team))
	}
	embed.Description = strings.Join(lines, "\n")
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d teams", len(teams))}
	return embed
}
