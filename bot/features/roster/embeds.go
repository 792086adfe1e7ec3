package roster

import (
	"fmt"
	"strings"
	"time"

	"helix/bot/common"
	"helix/models"

	"github.com/bwmarrin/discordgo"
)

// BuildRosterEmbed lists a team's members
func BuildRosterEmbed(team models.Team, teamName string, memberNames []string, rosterCap *int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s %s Roster", team.Emoji, teamName),
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(memberNames) == 0 {
		embed.Description = "No members on this team"
	} else {
		lines := make([]string, 0, len(memberNames))
		for _, name := range memberNames {
			lines = append(lines, fmt.Sprintf("%s %s", team.Emoji, name))
		}
		embed.Description = strings.Join(lines, "\n")
	}

	footer := fmt.Sprintf("%d members", len(memberNames))
	if rosterCap != nil {
		footer = fmt.Sprintf("%d / %d members", len(memberNames), *rosterCap)
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

// BuildSigningEmbed announces a signing in the transactions channel
func BuildSigningEmbed(team models.Team, playerID, staffID string, rosterSize int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🤝 Player Signed",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("%s signed with %s %s\nSigned by: %s\nMembers now in team: %d",
			common.UserMention(playerID), team.Emoji, common.RoleMention(team.RoleID),
			common.UserMention(staffID), rosterSize),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildReleaseEmbed announces a release in the transactions channel
func BuildReleaseEmbed(team models.Team, playerID, staffID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "❌ Player Released",
		Color: common.ColorDanger,
		Description: fmt.Sprintf("%s was released from %s %s\nReleased by: %s",
			common.UserMention(playerID), team.Emoji, common.RoleMention(team.RoleID),
			common.UserMention(staffID)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildPromotionEmbed announces a promotion in the transactions channel
func BuildPromotionEmbed(team models.Team, playerID, ownerID string, position models.RoleKey) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📈 Player Promoted",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("%s was promoted to **%s** for %s %s\nPromoted by: %s",
			common.UserMention(playerID), common.TitleCase(string(position)), team.Emoji,
			common.RoleMention(team.RoleID), common.UserMention(ownerID)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildDemotionEmbed announces removed coaching roles in the transactions channel
func BuildDemotionEmbed(team models.Team, playerID, ownerID string, roleIDs []string) *discordgo.MessageEmbed {
	mentions := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		mentions = append(mentions, common.RoleMention(id))
	}
	return &discordgo.MessageEmbed{
		Title: "📉 Player Demoted",
		Color: common.ColorWarning,
		Description: fmt.Sprintf("%s lost %s on %s %s\nDemoted by: %s",
			common.UserMention(playerID), strings.Join(mentions, ", "), team.Emoji,
			common.RoleMention(team.RoleID), common.UserMention(ownerID)),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
