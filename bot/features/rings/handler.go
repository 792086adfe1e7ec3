package rings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"helix/bot/common"
	"helix/models"
	"helix/permissions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func roleOption(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		if opt.Name == "role" {
			return opt.RoleValue(nil, "").ID
		}
	}
	return ""
}

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

func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	if !f.requireCommissioner(ctx, s, i) {
		return
	}

	roleID := roleOption(opts)
	err := f.ringRoleService.AddRingRole(ctx, i.GuildID, roleID)
	switch {
	case errors.Is(err, models.ErrDuplicateRingRole):
		common.RespondWithError(s, i, "This role is already a ring role")
		return
	case errors.Is(err, models.ErrInvalidRoleID):
		common.RespondWithError(s, i, "Role not found")
		return
	case err != nil:
		log.Errorf("Failed to add ring role %s in guild %s: %v", roleID, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to add ring role")
		return
	}

	message := fmt.Sprintf("Added ring role %s", common.RoleMention(roleID))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	if !f.requireCommissioner(ctx, s, i) {
		return
	}

	roleID := roleOption(opts)
	removed, err := f.ringRoleService.RemoveRingRole(ctx, i.GuildID, roleID)
	if err != nil {
		log.Errorf("Failed to remove ring role %s in guild %s: %v", roleID, i.GuildID, err)
		common.RespondWithError(s, i, "Failed to remove ring role")
		return
	}
	if !removed {
		common.RespondWithError(s, i, "This role is not a ring role")
		return
	}

	message := fmt.Sprintf("Removed ring role %s", common.RoleMention(roleID))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

func (f *Feature) handleRingCheck(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID := common.CallerID(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			userID = opt.UserValue(nil).ID
		}
	}

	_, held, err := common.MemberRoles(s, i.GuildID, userID)
	if err != nil {
		common.RespondWithError(s, i, "User not found in this server")
		return
	}

	ringRoles, err := f.ringRoleService.GetRingRoles(ctx, i.GuildID)
	if err != nil {
		log.Errorf("Failed to get ring roles for guild %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Failed to load ring roles")
		return
	}
	inServer := permissions.RingCount(held, ringRoles)

	total := inServer + f.ringsElsewhere(ctx, s, i.GuildID, userID)

	embed := BuildRingCheckEmbed(common.GetDisplayName(s, i.GuildID, userID), inServer, total)
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// ringsElsewhere counts the user's rings in every other guild the bot shares with them
func (f *Feature) ringsElsewhere(ctx context.Context, s *discordgo.Session, currentGuildID, userID string) int {
	total := 0
	for _, guild := range s.State.Guilds {
		if guild.ID == currentGuildID {
			continue
		}
		ringRoles, err := f.ringRoleService.GetRingRoles(ctx, guild.ID)
		if err != nil {
			log.WithError(err).WithField("guildID", guild.ID).Warn("Skipping guild in ring check")
			continue
		}
		if len(ringRoles) == 0 {
			continue
		}
		_, held, err := common.MemberRoles(s, guild.ID, userID)
		if err != nil {
			continue
		}
		total += permissions.RingCount(held, ringRoles)
	}
	return total
}

// BuildRingCheckEmbed reports a user's ring counts
func BuildRingCheckEmbed(displayName string, inServer, total int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "💍 Ring Check for " + displayName,
		Color: common.ColorRing,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rings in this server", Value: fmt.Sprintf("%d", inServer), Inline: true},
			{Name: "Total rings across servers", Value: fmt.Sprintf("%d", total), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
