package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"helix/bot/features/rings"
	"helix/bot/features/roster"
	"helix/bot/features/setup"
	"helix/bot/features/suspensions"
	"helix/bot/features/teams"
	"helix/events"
	"helix/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // register commands on this guild only; empty registers globally
}

type Bot struct {
	config        Config
	session       *discordgo.Session
	configService service.GuildConfigService
	eventBus      *events.Bus

	setupFeature   *setup.Feature
	teamsFeature   *teams.Feature
	ringsFeature   *rings.Feature
	rosterFeature  *roster.Feature
	suspendFeature *suspensions.Feature
}

func New(config Config, configService service.GuildConfigService, teamService service.TeamService, ringRoleService service.RingRoleService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:         config,
		session:        dg,
		configService:  configService,
		eventBus:       eventBus,
		setupFeature:   setup.NewFeature(dg, configService),
		teamsFeature:   teams.NewFeature(dg, configService, teamService),
		ringsFeature:   rings.NewFeature(dg, configService, ringRoleService),
		rosterFeature:  roster.NewFeature(dg, configService, teamService),
		suspendFeature: suspensions.NewFeature(dg, configService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Mirror registry changes into each guild's logs channel
	eventBus.SubscribeAll(bot.handleAuditEvent)
	log.Info("Audit logging to guild logs channels enabled")

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.GuildID == "" {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "setup":
		b.setupFeature.HandleCommand(s, i)
	case "config":
		b.setupFeature.HandleConfig(s, i)
	case "addteam":
		b.teamsFeature.HandleAddTeam(s, i)
	case "removeteam":
		b.teamsFeature.HandleRemoveTeam(s, i)
	case "teams":
		b.teamsFeature.HandleListTeams(s, i)
	case "ringrole":
		b.ringsFeature.HandleRingRole(s, i)
	case "ringcheck":
		b.ringsFeature.HandleRingCheck(s, i)
	case "roster":
		b.rosterFeature.HandleRoster(s, i)
	case "sign":
		b.rosterFeature.HandleSign(s, i)
	case "release":
		b.rosterFeature.HandleRelease(s, i)
	case "promote":
		b.rosterFeature.HandlePromote(s, i)
	case "demote":
		b.rosterFeature.HandleDemote(s, i)
	case "suspend":
		b.suspendFeature.HandleSuspend(s, i)
	case "unsuspend":
		b.suspendFeature.HandleUnsuspend(s, i)
	}
}
