package common

import (
	"helix/permissions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// IsUserAdmin checks if the interaction's caller owns the guild or holds Administrator
func IsUserAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}

	// Resolved permissions arrive with the interaction
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
	}
	if err != nil {
		log.Errorf("Failed to get guild %s: %v", i.GuildID, err)
		return false
	}
	return guild.OwnerID == i.Member.User.ID
}

// CallerRoles returns the role IDs held by the interaction's caller
func CallerRoles(i *discordgo.InteractionCreate) permissions.RoleSet {
	if i.Member == nil {
		return permissions.NewRoleSet()
	}
	return permissions.NewRoleSet(i.Member.Roles...)
}

// MemberRoles fetches a guild member and returns the role IDs they hold
func MemberRoles(s *discordgo.Session, guildID, userID string) (*discordgo.Member, permissions.RoleSet, error) {
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil, nil, err
	}
	return member, permissions.NewRoleSet(member.Roles...), nil
}

// CallerID returns the user ID of whoever triggered the interaction
func CallerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// ListGuildMembers pages through every member of a guild
func ListGuildMembers(s *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	var all []*discordgo.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < 1000 {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// MembersWithRole filters members down to those holding roleID
func MembersWithRole(members []*discordgo.Member, roleID string) []*discordgo.Member {
	var holders []*discordgo.Member
	for _, m := range members {
		for _, id := range m.Roles {
			if id == roleID {
				holders = append(holders, m)
				break
			}
		}
	}
	return holders
}

// MemberDisplayName returns a member's nickname, or username when none is set
func MemberDisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return "Unknown"
}
