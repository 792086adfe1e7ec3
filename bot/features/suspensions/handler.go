package suspensions

import (
	"context"
	"fmt"

	"helix/bot/common"
	"helix/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSuspension(s *discordgo.Session, i *discordgo.InteractionCreate, lift bool) {
	ctx := context.Background()

	var targetID string
	var details SuspensionDetails
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetID = opt.UserValue(nil).ID
		case "reason":
			details.Reason = opt.StringValue()
		case "length":
			details.Length = opt.StringValue()
		case "bail":
			details.Bail = opt.StringValue()
		}
	}
	if targetID == "" {
		common.RespondWithError(s, i, "Choose a member")
		return
	}

	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return
	}

	_, targetRoles, err := common.MemberRoles(s, i.GuildID, targetID)
	if err != nil {
		common.RespondWithError(s, i, "That user is not in this server")
		return
	}

	roleID, denial := CheckSuspension(cfg, common.CallerRoles(i), targetRoles, lift)
	if denial != "" {
		common.RespondWithError(s, i, denial)
		return
	}

	officialID := common.CallerID(i)
	fields := log.Fields{
		"guildID":    i.GuildID,
		"playerID":   targetID,
		"officialID": officialID,
	}

	var embed *discordgo.MessageEmbed
	var message string
	if lift {
		if err := s.GuildMemberRoleRemove(i.GuildID, targetID, roleID); err != nil {
			log.Errorf("Failed to remove suspended role from %s: %v", targetID, err)
			common.RespondWithError(s, i, "Failed to remove the suspended role")
			return
		}
		log.WithFields(fields).Info("Suspension lifted")
		embed = BuildSuspensionLiftedEmbed(targetID, officialID, details.Reason)
		message = fmt.Sprintf("Lifted the suspension on %s", common.UserMention(targetID))
	} else {
		if err := s.GuildMemberRoleAdd(i.GuildID, targetID, roleID); err != nil {
			log.Errorf("Failed to add suspended role to %s: %v", targetID, err)
			common.RespondWithError(s, i, "Failed to assign the suspended role")
			return
		}
		log.WithFields(fields).Info("Player suspended")
		embed = BuildSuspensionEmbed(targetID, officialID, details)
		message = fmt.Sprintf("Suspended %s", common.UserMention(targetID))
	}

	if channelID, ok := cfg.Channel(models.ChannelSuspensions); ok {
		if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
			log.Errorf("Failed to post to suspensions channel %s: %v", channelID, err)
		}
	}

	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}
