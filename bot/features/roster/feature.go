package roster

import (
	"helix/bot/common"
	"helix/permissions"
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles team rosters and their staff
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
	teamService   service.TeamService
}

// NewFeature creates a new roster feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService, teamService service.TeamService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
		teamService:   teamService,
	}
}

// HandleRoster handles the /roster command
func (f *Feature) HandleRoster(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRoster(s, i)
}

// HandleSign handles the /sign command
func (f *Feature) HandleSign(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSign(s, i)
}

// HandleRelease handles the /release command
func (f *Feature) HandleRelease(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRelease(s, i)
}

// HandlePromote handles the /promote command
func (f *Feature) HandlePromote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePromote(s, i)
}

// HandleDemote handles the /demote command
func (f *Feature) HandleDemote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDemote(s, i)
}

// PositionChoices offers the coaching positions a franchise owner can promote to
func PositionChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(permissions.CoachingStaff))
	for _, key := range permissions.CoachingStaff {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  common.TitleCase(string(key)),
			Value: string(key),
		})
	}
	return choices
}
