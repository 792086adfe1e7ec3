package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helix/bot/common"
	"helix/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// requireCommissioner loads the guild config and replies with an error unless the caller
// holds the configured commissioner role
func (f *Feature) requireCommissioner(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	cfg, err := f.configService.EnsureGuildConfig(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load configuration")
		return false
	}
	if denial := common.CapabilityDenial(common.CallerRoles(i), cfg, models.RoleCommissioner); denial != "" {
		common.RespondWithError(s, i, denial)
		return false
	}
	return true
}

func (f *Feature) handleAddTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if !f.requireCommissioner(ctx, s, i) {
		return
	}

	var team models.Team
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "role":
			team.RoleID = opt.RoleValue(nil, "").ID
		case "emoji":
			team.Emoji = strings.TrimSpace(opt.StringValue())
		case "name":
			team.Name = strings.TrimSpace(opt.StringValue())
		}
	}

	err := f.teamService.AddTeam(ctx, i.GuildID, team)
	switch {
	case errors.Is(err, models.ErrCorruptDocument):
		log.Errorf("Stored teams for guild %s are invalid: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to add team")
		return
	case errors.Is(err, models.ErrDuplicateTeam):
		common.RespondWithError(s, i, "A team with this role already exists")
		return
	case errors.Is(err, models.ErrInvalidTeam):
		common.RespondWithError(s, i, "A team needs both a role and an emoji")
		return
	case err != nil:
		log.Errorf("Failed to add team %s in guild %s: %v", team.RoleID, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to add team")
		return
	}

	log.WithFields(log.Fields{
		"guildID": i.GuildID,
		"roleID":  team.RoleID,
	}).Info("Team added")

	message := fmt.Sprintf("Added team %s", FormatTeamLine(team))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (f *Feature) handleRemoveTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if !f.requireCommissioner(ctx, s, i) {
		return
	}

	var roleID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "role" {
			roleID = opt.RoleValue(nil, "").ID
		}
	}

	removed, err := f.teamService.RemoveTeam(ctx, i.GuildID, roleID)
	if err != nil {
		log.Errorf("Failed to remove team %s in guild %s: %v", roleID, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to remove team")
		return
	}
	if !removed {
		common.RespondWithError(s, i, "That role is not a registered team")
		return
	}

	message := fmt.Sprintf("Removed team %s", common.RoleMention(roleID))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (f *Feature) handleListTeams(s *discordgo.Session, i *discordgo.InteractionCreate) {
	teams, err := f.teamService.GetTeams(context.Background(), i.GuildID)
	if err != nil {
		log.Errorf("Failed to get teams for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load teams")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildTeamsEmbed(teams), false); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}
