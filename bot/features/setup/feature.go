package setup

import (
	"helix/models"
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild setup and configuration display
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
}

// NewFeature creates a new setup feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
	}
}

// HandleCommand routes setup commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "auto":
		f.handleAuto(s, i)
	case "role":
		f.handleRole(s, i, options[0].Options)
	case "channel":
		f.handleChannel(s, i, options[0].Options)
	case "rostercap":
		f.handleRosterCap(s, i, options[0].Options)
	}
}

// HandleConfig handles the /config command
func (f *Feature) HandleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleShowConfig(s, i)
}

// RoleKeyChoices lists the recognized role keys as command choices
func RoleKeyChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, key := range models.RoleKeys() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(key), Value: string(key)})
	}
	return choices
}

// ChannelKeyChoices lists the recognized channel keys as command choices
func ChannelKeyChoices() []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, key := range models.ChannelKeys() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(key), Value: string(key)})
	}
	return choices
}
