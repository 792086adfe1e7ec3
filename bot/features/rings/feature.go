package rings

import (
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles championship ring roles
type Feature struct {
	session         *discordgo.Session
	configService   service.GuildConfigService
	ringRoleService service.RingRoleService
}

// NewFeature creates a new rings feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService, ringRoleService service.RingRoleService) *Feature {
	return &Feature{
		session:         session,
		configService:   configService,
		ringRoleService: ringRoleService,
	}
}

// HandleRingRole routes /ringrole subcommands
func (f *Feature) HandleRingRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "add":
		f.handleAdd(s, i, options[0].Options)
	case "remove":
		f.handleRemove(s, i, options[0].Options)
	}
}

// HandleRingCheck handles the /ringcheck command
func (f *Feature) HandleRingCheck(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRingCheck(s, i)
}
