package setup

import (
	"context"
	"errors"
	"fmt"

	"helix/bot/common"
	"helix/models"
	"helix/permissions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionsByName(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// handleAuto handles the /setup auto command
func (f *Feature) handleAuto(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer setup response: %v", err)
		return
	}

	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		log.Errorf("Failed to fetch channels for guild %s: %v", i.GuildID, err)
		common.FollowUpWithError(s, i, "Failed to read the server's channels")
		return
	}
	roles, err := s.GuildRoles(i.GuildID)
	if err != nil {
		log.Errorf("Failed to fetch roles for guild %s: %v", i.GuildID, err)
		common.FollowUpWithError(s, i, "Failed to read the server's roles")
		return
	}

	channelCandidates := make([]Candidate, 0, len(channels))
	for _, ch := range channels {
		channelCandidates = append(channelCandidates, Candidate{ID: ch.ID, Name: ch.Name})
	}
	roleCandidates := make([]Candidate, 0, len(roles))
	for _, role := range roles {
		// @everyone shares the guild's ID
		if role.ID == i.GuildID {
			continue
		}
		roleCandidates = append(roleCandidates, Candidate{ID: role.ID, Name: role.Name})
	}
	SortCandidates(channelCandidates)
	SortCandidates(roleCandidates)

	result := BuildAutoSetup(channelCandidates, roleCandidates)

	ctx := context.Background()
	if _, err := f.configService.UpdateGuildConfig(ctx, i.GuildID, result.Update); err != nil {
		log.Errorf("Failed to save auto setup for guild %s: %v", i.GuildID, err)
		common.FollowUpWithError(s, i, "Failed to save configuration")
		return
	}

	log.WithFields(log.Fields{
		"guildID":  i.GuildID,
		"channels": len(result.MatchedChannels),
		"roles":    len(result.MatchedRoles),
	}).Info("Auto setup complete")

	if _, err := common.FollowUpWithEmbed(s, i, BuildAutoSetupEmbed(result), true); err != nil {
		log.Errorf("Failed to send auto setup summary: %v", err)
	}
}

// handleRole handles the /setup role command. Omitting the role clears the slot.
func (f *Feature) handleRole(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	byName := optionsByName(opts)
	keyOpt, ok := byName["key"]
	if !ok {
		common.RespondWithError(s, i, "A role key is required")
		return
	}
	key := models.RoleKey(keyOpt.StringValue())

	var roleID *string
	if opt, ok := byName["role"]; ok {
		roleID = models.StringPtr(opt.RoleValue(nil, "").ID)
	}

	update := models.GuildConfigUpdate{Roles: map[models.RoleKey]*string{key: roleID}}
	if _, err := f.configService.UpdateGuildConfig(context.Background(), i.GuildID, update); err != nil {
		log.Errorf("Failed to set role %q for guild %s: %v", key, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to update configuration")
		return
	}

	message := fmt.Sprintf("Role **%s** cleared", key)
	if roleID != nil {
		message = fmt.Sprintf("Role **%s** set to %s", key, common.RoleMention(*roleID))
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// handleChannel handles the /setup channel command. Omitting the channel clears the slot.
func (f *Feature) handleChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	byName := optionsByName(opts)
	keyOpt, ok := byName["key"]
	if !ok {
		common.RespondWithError(s, i, "A channel key is required")
		return
	}
	key := models.ChannelKey(keyOpt.StringValue())

	var channelID *string
	if opt, ok := byName["channel"]; ok {
		channelID = models.StringPtr(opt.ChannelValue(nil).ID)
	}

	update := models.GuildConfigUpdate{Channels: map[models.ChannelKey]*string{key: channelID}}
	if _, err := f.configService.UpdateGuildConfig(context.Background(), i.GuildID, update); err != nil {
		log.Errorf("Failed to set channel %q for guild %s: %v", key, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to update configuration")
		return
	}

	message := fmt.Sprintf("Channel **%s** cleared", key)
	if channelID != nil {
		message = fmt.Sprintf("Channel **%s** set to %s", key, common.ChannelMention(*channelID))
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// handleRosterCap handles the /setup rostercap command. Omitting the cap makes rosters unlimited.
func (f *Feature) handleRosterCap(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !common.IsUserAdmin(s, i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	update := models.GuildConfigUpdate{ClearRosterCap: true}
	if opt, ok := optionsByName(opts)["cap"]; ok {
		update = models.GuildConfigUpdate{RosterCap: models.IntPtr(int(opt.IntValue()))}
	}

	cfg, err := f.configService.UpdateGuildConfig(context.Background(), i.GuildID, update)
	if errors.Is(err, models.ErrInvalidRosterCap) {
		common.RespondWithError(s, i, "Roster cap must be a positive number")
		return
	}
	if err != nil {
		log.Errorf("Failed to set roster cap for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to update configuration")
		return
	}

	message := "Roster cap set to " + common.FormatRosterCap(cfg.RosterCap)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// handleShowConfig handles the /config command for administrators and commissioners
func (f *Feature) handleShowConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg, err := f.configService.EnsureGuildConfig(context.Background(), i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return
	}

	if !common.IsUserAdmin(s, i) && !permissions.HasCapability(common.CallerRoles(i), cfg, models.RoleCommissioner) {
		common.RespondWithError(s, i, "You must be an administrator or commissioner to view the configuration")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildConfigEmbed(cfg), true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}
