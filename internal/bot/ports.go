package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Actions is the capability-gated surface of the platform the handlers and
// the mute sweep act through. Production code is backed by the discordgo
// session; tests substitute fakes.
type Actions interface {
	Ban(guildID, userID, reason string) error
	Unban(guildID, userID string) error
	Kick(guildID, userID, reason string) error

	FindRoleByName(guildID, name string) (string, error)
	EnsureRole(guildID, name string) (string, error)
	GrantRole(guildID, userID, roleID string) error
	RevokeRole(guildID, userID, roleID string) error
	SetNickname(guildID, userID, nick string) error

	// SetChannelSendLock denies or restores the everyone role's permission
	// to send messages in a channel.
	SetChannelSendLock(guildID, channelID string, locked bool) error

	DeleteMessage(channelID, messageID string) error
	RecentMessages(channelID, beforeID string, limit int) ([]string, error)
	BulkDelete(channelID string, messageIDs []string) error

	ListBans(guildID string) ([]string, error)
	ListRoles(guildID string) ([]string, error)
	ListChannels(guildID string) ([]string, error)

	// MemberPermissions resolves the actor's effective permission set in a
	// channel. The second result is false when no membership could be
	// resolved, which callers must treat as a failed permission check.
	MemberPermissions(guildID, channelID, userID string) (int64, bool)
	MemberRoles(guildID, userID string) []string
}

// Responder posts replies visible to the triggering context.
type Responder interface {
	Reply(msg *discordgo.Message, content string) error
	ReplyEmbed(msg *discordgo.Message, embed *discordgo.MessageEmbed) error
	// Temporary posts a notice and removes it again after ttl.
	Temporary(channelID, content string, ttl time.Duration)
}
