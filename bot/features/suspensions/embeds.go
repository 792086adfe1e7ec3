package suspensions

import (
	"time"

	"helix/bot/common"

	"github.com/bwmarrin/discordgo"
)

// SuspensionDetails are the free-text terms an official gives with a suspension
type SuspensionDetails struct {
	Reason string
	Length string
	Bail   string
}

// BuildSuspensionEmbed announces a suspension in the suspensions channel
func BuildSuspensionEmbed(playerID, officialID string, details SuspensionDetails) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🚫 Player Suspended",
		Color: common.ColorDanger,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Suspended Player", Value: common.UserMention(playerID), Inline: true},
			{Name: "Issued By", Value: common.UserMention(officialID), Inline: true},
			{Name: "Length", Value: orNotSet(details.Length), Inline: true},
			{Name: "Reason", Value: orNotSet(details.Reason), Inline: false},
			{Name: "Bail Cost", Value: orNotSet(details.Bail), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildSuspensionLiftedEmbed announces a lifted suspension in the suspensions channel
func BuildSuspensionLiftedEmbed(playerID, officialID, reason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✅ Suspension Lifted",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Player", Value: common.UserMention(playerID), Inline: true},
			{Name: "Lifted By", Value: common.UserMention(officialID), Inline: true},
			{Name: "Reason", Value: orNotSet(reason), Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func orNotSet(value string) string {
	if value == "" {
		return common.NotSet
	}
	if len(value) > common.MaxFieldValueLength {
		return value[:common.MaxFieldValueLength-3] + "..."
	}
	return value
}
