package suspensions

import (
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Feature lets league officials suspend players and lift suspensions
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
}

// NewFeature creates a new suspensions feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
	}
}

// HandleSuspend handles the /suspend command
func (f *Feature) HandleSuspend(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSuspension(s, i, false)
}

// HandleUnsuspend handles the /unsuspend command
func (f *Feature) HandleUnsuspend(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSuspension(s, i, true)
}
