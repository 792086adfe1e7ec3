package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCommandDefinitions(t *testing.T) {
	commands := commandDefinitions()

	seen := make(map[string]bool)
	for _, cmd := range commands {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true

		assert.NotEmpty(t, cmd.Description, cmd.Name)
		assert.LessOrEqual(t, len(cmd.Description), 100, cmd.Name)
		if assert.NotNil(t, cmd.DMPermission, cmd.Name) {
			assert.False(t, *cmd.DMPermission, cmd.Name)
		}
		checkOptions(t, cmd.Name, cmd.Options)
	}

	for _, name := range []string{"setup", "config", "addteam", "removeteam", "teams", "roster", "sign", "release", "promote", "demote", "suspend", "unsuspend", "ringrole", "ringcheck"} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}

func checkOptions(t *testing.T, path string, options []*discordgo.ApplicationCommandOption) {
	t.Helper()
	for _, opt := range options {
		assert.LessOrEqual(t, len(opt.Choices), 25, path+" "+opt.Name)
		assert.LessOrEqual(t, len(opt.Description), 100, path+" "+opt.Name)
		checkOptions(t, path+" "+opt.Name, opt.Options)
	}
}

func TestSetupCommandOffersEveryKey(t *testing.T) {
	var setup *discordgo.ApplicationCommand
	for _, cmd := range commandDefinitions() {
		if cmd.Name == "setup" {
			setup = cmd
		}
	}
	if !assert.NotNil(t, setup) {
		return
	}

	subcommands := make(map[string]*discordgo.ApplicationCommandOption)
	for _, opt := range setup.Options {
		subcommands[opt.Name] = opt
	}

	assert.Len(t, subcommands["role"].Options[0].Choices, 16)
	assert.Len(t, subcommands["channel"].Options[0].Choices, 14)
	assert.Equal(t, "team owners", subcommands["channel"].Options[0].Choices[6].Value)
}

func TestPromoteOffersCoachingPositions(t *testing.T) {
	for _, cmd := range commandDefinitions() {
		if cmd.Name != "promote" {
			continue
		}
		choices := cmd.Options[1].Choices
		if assert.Len(t, choices, 3) {
			assert.Equal(t, "General Manager", choices[0].Name)
			assert.Equal(t, "general manager", choices[0].Value)
			assert.Equal(t, "assistant coach", choices[2].Value)
		}
		return
	}
	t.Fatal("promote command not defined")
}
