package roster

import (
	"context"
	"fmt"

	"helix/bot/common"
	"helix/models"
	"helix/permissions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func userOption(i *discordgo.InteractionCreate) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			return opt.UserValue(nil).ID
		}
	}
	return ""
}

// teamName prefers the registered display name, then the live role name
func teamName(s *discordgo.Session, guildID string, team models.Team) string {
	if team.Name != "" {
		return team.Name
	}
	if role, err := s.State.Role(guildID, team.RoleID); err == nil {
		return role.Name
	}
	return "Team"
}

// postTransaction sends an embed to the guild's transactions channel when one is configured
func postTransaction(s *discordgo.Session, cfg *models.GuildConfig, embed *discordgo.MessageEmbed) {
	channelID, ok := cfg.Channel(models.ChannelTransactions)
	if !ok {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Errorf("Failed to post to transactions channel %s: %v", channelID, err)
	}
}

func (f *Feature) handleRoster(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var roleID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "team" {
			roleID = opt.RoleValue(nil, "").ID
		}
	}

	teams, err := f.teamService.GetTeams(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to get teams for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load teams")
		return
	}
	idx := (&models.GuildTeams{Teams: teams}).Find(roleID)
	if idx < 0 {
		common.RespondWithError(s, i, "That role is not a registered team")
		return
	}
	team := teams[idx]

	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Failed to defer roster response: %v", err)
		return
	}

	members, err := common.ListGuildMembers(s, i.GuildID)
	if err != nil {
		log.Errorf("Failed to list members for guild %s: %v", i.GuildID, err)
		common.FollowUpWithError(s, i, "Failed to read the server's members")
		return
	}

	var names []string
	for _, m := range common.MembersWithRole(members, team.RoleID) {
		names = append(names, RosterEntry(cfg, common.MemberDisplayName(m), permissions.NewRoleSet(m.Roles...)))
	}

	embed := BuildRosterEmbed(team, teamName(s, i.GuildID, team), names, cfg.RosterCap)
	if _, err := common.FollowUpWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Failed to send roster: %v", err)
	}
}

func (f *Feature) handleSign(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	targetID := userOption(i)
	if targetID == "" || targetID == common.CallerID(i) {
		common.RespondWithError(s, i, "Choose another member to sign")
		return
	}

	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return
	}
	teams, err := f.teamService.GetTeams(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to get teams for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load teams")
		return
	}

	_, targetRoles, err := common.MemberRoles(s, i.GuildID, targetID)
	if err != nil {
		common.RespondWithError(s, i, "That user is not in this server")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer sign response: %v", err)
		return
	}

	var members []*discordgo.Member
	rosterSize := func(roleID string) (int, error) {
		var listErr error
		members, listErr = common.ListGuildMembers(s, i.GuildID)
		if listErr != nil {
			return 0, fmt.Errorf("failed to list members: %w", listErr)
		}
		return len(common.MembersWithRole(members, roleID)), nil
	}

	team, err := CheckSigning(cfg, teams, common.CallerRoles(i), targetRoles, rosterSize)
	if err != nil {
		if !isRuleError(err) {
			log.Errorf("Failed to check signing in guild %s: %v", i.GuildID, err)
		}
		common.FollowUpWithError(s, i, Describe(err))
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, targetID, team.RoleID); err != nil {
		log.Errorf("Failed to add team role %s to %s: %v", team.RoleID, targetID, err)
		common.FollowUpWithError(s, i, "Failed to add the team role")
		return
	}

	log.WithFields(log.Fields{
		"guildID":  i.GuildID,
		"teamRole": team.RoleID,
		"playerID": targetID,
		"staffID":  common.CallerID(i),
	}).Info("Player signed")

	size := len(common.MembersWithRole(members, team.RoleID)) + 1
	postTransaction(s, cfg, BuildSigningEmbed(team, targetID, common.CallerID(i), size))
	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Signed %s to %s", common.UserMention(targetID), common.RoleMention(team.RoleID)), true)
}

func (f *Feature) handleRelease(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	targetID := userOption(i)
	if targetID == "" || targetID == common.CallerID(i) {
		common.RespondWithError(s, i, "Choose another member to release")
		return
	}

	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return
	}
	teams, err := f.teamService.GetTeams(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to get teams for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load teams")
		return
	}

	_, targetRoles, err := common.MemberRoles(s, i.GuildID, targetID)
	if err != nil {
		common.RespondWithError(s, i, "That user is not in this server")
		return
	}

	team, err := CheckRelease(cfg, teams, common.CallerRoles(i), targetRoles)
	if err != nil {
		common.RespondWithError(s, i, Describe(err))
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Failed to defer release response: %v", err)
		return
	}

	// Coaching roles go first; only a failure on the team role aborts the release
	roles := ReleaseRoles(cfg, targetRoles, team)
	for _, roleID := range roles[:len(roles)-1] {
		if err := s.GuildMemberRoleRemove(i.GuildID, targetID, roleID); err != nil {
			log.Warnf("Failed to remove coaching role %s from %s: %v", roleID, targetID, err)
		}
	}
	if err := s.GuildMemberRoleRemove(i.GuildID, targetID, team.RoleID); err != nil {
		log.Errorf("Failed to remove team role %s from %s: %v", team.RoleID, targetID, err)
		common.FollowUpWithError(s, i, "Failed to remove the team role")
		return
	}

	log.WithFields(log.Fields{
		"guildID":  i.GuildID,
		"teamRole": team.RoleID,
		"playerID": targetID,
		"staffID":  common.CallerID(i),
	}).Info("Player released")

	postTransaction(s, cfg, BuildReleaseEmbed(team, targetID, common.CallerID(i)))
	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Released %s from your team", common.UserMention(targetID)), true)
}

// loadStaffAction resolves the config, teams and target roles shared by /promote and /demote.
// It replies with an error and returns ok=false when any of them cannot be loaded.
func (f *Feature) loadStaffAction(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) (*models.GuildConfig, []models.Team, permissions.RoleSet, bool) {
	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return nil, nil, nil, false
	}
	teams, err := f.teamService.GetTeams(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to get teams for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load teams")
		return nil, nil, nil, false
	}
	_, targetRoles, err := common.MemberRoles(s, i.GuildID, targetID)
	if err != nil {
		common.RespondWithError(s, i, "That user is not in this server")
		return nil, nil, nil, false
	}
	return cfg, teams, targetRoles, true
}

func (f *Feature) handlePromote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var targetID string
	var position models.RoleKey
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetID = opt.UserValue(nil).ID
		case "position":
			position = models.RoleKey(opt.StringValue())
		}
	}
	if targetID == "" {
		common.RespondWithError(s, i, "Choose a member to promote")
		return
	}

	cfg, teams, targetRoles, ok := f.loadStaffAction(ctx, s, i, targetID)
	if !ok {
		return
	}

	team, roleID, err := CheckPromotion(cfg, teams, common.CallerRoles(i), targetRoles, position)
	if err != nil {
		common.RespondWithError(s, i, Describe(err))
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, targetID, roleID); err != nil {
		log.Errorf("Failed to add %s role %s to %s: %v", position, roleID, targetID, err)
		common.RespondWithError(s, i, "Failed to add the position role")
		return
	}

	log.WithFields(log.Fields{
		"guildID":  i.GuildID,
		"teamRole": team.RoleID,
		"playerID": targetID,
		"position": position,
		"ownerID":  common.CallerID(i),
	}).Info("Player promoted")

	postTransaction(s, cfg, BuildPromotionEmbed(team, targetID, common.CallerID(i), position))
	message := fmt.Sprintf("Promoted %s to %s", common.UserMention(targetID), common.TitleCase(string(position)))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to promote: %v", err)
	}
}

func (f *Feature) handleDemote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	targetID := userOption(i)
	if targetID == "" {
		common.RespondWithError(s, i, "Choose a member to demote")
		return
	}

	cfg, teams, targetRoles, ok := f.loadStaffAction(ctx, s, i, targetID)
	if !ok {
		return
	}

	team, roles, err := CheckDemotion(cfg, teams, common.CallerRoles(i), targetRoles)
	if err != nil {
		common.RespondWithError(s, i, Describe(err))
		return
	}

	var removed []string
	for _, roleID := range roles {
		if err := s.GuildMemberRoleRemove(i.GuildID, targetID, roleID); err != nil {
			log.Warnf("Failed to remove coaching role %s from %s: %v", roleID, targetID, err)
			continue
		}
		removed = append(removed, roleID)
	}
	if len(removed) == 0 {
		common.RespondWithError(s, i, "Failed to remove the coaching roles")
		return
	}

	log.WithFields(log.Fields{
		"guildID":  i.GuildID,
		"teamRole": team.RoleID,
		"playerID": targetID,
		"removed":  len(removed),
		"ownerID":  common.CallerID(i),
	}).Info("Player demoted")

	postTransaction(s, cfg, BuildDemotionEmbed(team, targetID, common.CallerID(i), removed))
	message := fmt.Sprintf("Removed coaching roles from %s", common.UserMention(targetID))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to demote: %v", err)
	}
}
