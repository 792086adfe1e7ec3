package bot

import (
	"fmt"

	"helix/bot/features/roster"
	"helix/bot/features/setup"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var (
	guildOnly         = false
	administratorOnly = int64(discordgo.PermissionAdministrator)
	minRosterCap      = float64(1)
)

// commandDefinitions lists every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setup",
			Description:              "Configure league roles, channels and settings (admin only)",
			DMPermission:             &guildOnly,
			DefaultMemberPermissions: &administratorOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "auto",
					Description: "Match every role and channel by name",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "role",
					Description: "Set or clear one league role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Which league role to set",
							Required:    true,
							Choices:     setup.RoleKeyChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "The server role to use (leave empty to clear)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Set or clear one league channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "Which league channel to set",
							Required:    true,
							Choices:     setup.ChannelKeyChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The server channel to use (leave empty to clear)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "rostercap",
					Description: "Set the maximum team size",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "cap",
							Description: "Maximum members per team (leave empty for unlimited)",
							Required:    false,
							MinValue:    &minRosterCap,
						},
					},
				},
			},
		},
		{
			Name:         "config",
			Description:  "Show the league configuration",
			DMPermission: &guildOnly,
		},
		{
			Name:         "addteam",
			Description:  "Register a team role (commissioner only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "The team role to add",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "The emoji representing the team",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Display name, if different from the role",
					Required:    false,
				},
			},
		},
		{
			Name:         "removeteam",
			Description:  "Remove a registered team (commissioner only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "The team role to remove",
					Required:    true,
				},
			},
		},
		{
			Name:         "teams",
			Description:  "List the league's teams",
			DMPermission: &guildOnly,
		},
		{
			Name:         "roster",
			Description:  "Show a team's roster",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "team",
					Description: "The team role",
					Required:    true,
				},
			},
		},
		{
			Name:         "sign",
			Description:  "Sign a free agent to your team (coaching staff only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to sign",
					Required:    true,
				},
			},
		},
		{
			Name:         "release",
			Description:  "Release a player from your team and remove their coaching roles",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to release",
					Required:    true,
				},
			},
		},
		{
			Name:         "promote",
			Description:  "Give a teammate a coaching position (franchise owner only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to promote",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "position",
					Description: "Coaching position to give",
					Required:    true,
					Choices:     roster.PositionChoices(),
				},
			},
		},
		{
			Name:         "demote",
			Description:  "Remove a teammate's coaching roles (franchise owner only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to demote",
					Required:    true,
				},
			},
		},
		{
			Name:         "suspend",
			Description:  "Suspend a player from the league (referee or commissioner)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to suspend",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Why is the user being suspended?",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "length",
					Description: "Length of suspension (e.g. \"1 week\", \"indefinite\")",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "bail",
					Description: "Bail cost to unsuspend (or \"none\")",
					Required:    false,
				},
			},
		},
		{
			Name:         "unsuspend",
			Description:  "Lift a player's suspension (referee or commissioner)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to unsuspend",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Why the suspension is lifted",
					Required:    false,
				},
			},
		},
		{
			Name:         "ringrole",
			Description:  "Manage championship ring roles (commissioner only)",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a ring role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to add as a ring role",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a ring role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Ring role to remove",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:         "ringcheck",
			Description:  "Check how many ring roles a user has in this server and in total",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
					Required:    false,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range commandDefinitions() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	log.WithFields(log.Fields{
		"guildID": b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}
