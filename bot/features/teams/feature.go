package teams

import (
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles team registry commands
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
	teamService   service.TeamService
}

// NewFeature creates a new teams feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService, teamService service.TeamService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
		teamService:   teamService,
	}
}

// HandleAddTeam handles the /addteam command
func (f *Feature) HandleAddTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleAddTeam(s, i)
}

// HandleRemoveTeam handles the /removeteam command
func (f *Feature) HandleRemoveTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRemoveTeam(s, i)
}

// HandleListTeams handles the /teams command
func (f *Feature) HandleListTeams(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleListTeams(s, i)
}
