package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestMembersWithRole(t *testing.T) {
	a := &discordgo.Member{User: &discordgo.User{ID: "1"}, Roles: []string{"team", "other"}}
	b := &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"other"}}
	c := &discordgo.Member{User: &discordgo.User{ID: "3"}, Roles: []string{"team"}}

	holders := MembersWithRole([]*discordgo.Member{a, b, c}, "team")

	assert.Equal(t, []*discordgo.Member{a, c}, holders)
	assert.Empty(t, MembersWithRole([]*discordgo.Member{b}, "team"))
}

func TestMemberDisplayName(t *testing.T) {
	assert.Equal(t, "Nick", MemberDisplayName(&discordgo.Member{Nick: "Nick", User: &discordgo.User{Username: "user"}}))
	assert.Equal(t, "Global", MemberDisplayName(&discordgo.Member{User: &discordgo.User{Username: "user", GlobalName: "Global"}}))
	assert.Equal(t, "user", MemberDisplayName(&discordgo.Member{User: &discordgo.User{Username: "user"}}))
	assert.Equal(t, "Unknown", MemberDisplayName(&discordgo.Member{}))
}

func TestCallerRoles(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}, Roles: []string{"r1", "r2"}},
	}}

	roles := CallerRoles(i)
	assert.True(t, roles.Has("r1"))
	assert.True(t, roles.Has("r2"))
	assert.False(t, roles.Has("r3"))
	assert.Equal(t, "u1", CallerID(i))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "u2"}}}
	assert.Empty(t, CallerRoles(dm))
	assert.Equal(t, "u2", CallerID(dm))
}
