package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// discordActions implements Actions over a live gateway session.
type discordActions struct {
	session *discordgo.Session
}

func (a *discordActions) Ban(guildID, userID, reason string) error {
	return a.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

func (a *discordActions) Unban(guildID, userID string) error {
	return a.session.GuildBanDelete(guildID, userID)
}

func (a *discordActions) Kick(guildID, userID, reason string) error {
	return a.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (a *discordActions) FindRoleByName(guildID, name string) (string, error) {
	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return "", err
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}
	return "", nil
}

func (a *discordActions) EnsureRole(guildID, name string) (string, error) {
	roleID, err := a.FindRoleByName(guildID, name)
	if err != nil {
		return "", err
	}
	if roleID != "" {
		return roleID, nil
	}
	perms := int64(0)
	role, err := a.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name, Permissions: &perms})
	if err != nil {
		return "", err
	}
	return role.ID, nil
}

func (a *discordActions) GrantRole(guildID, userID, roleID string) error {
	return a.session.GuildMemberRoleAdd(guildID, userID, roleID)
}

func (a *discordActions) RevokeRole(guildID, userID, roleID string) error {
	return a.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (a *discordActions) SetNickname(guildID, userID, nick string) error {
	return a.session.GuildMemberNickname(guildID, userID, nick)
}

func (a *discordActions) SetChannelSendLock(guildID, channelID string, locked bool) error {
	var allow, deny int64
	channel, err := a.session.State.Channel(channelID)
	if err != nil || channel == nil {
		channel, err = a.session.Channel(channelID)
		if err != nil {
			return err
		}
	}
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole && overwrite.ID == guildID {
			allow = overwrite.Allow
			deny = overwrite.Deny
			break
		}
	}
	if locked {
		allow &^= discordgo.PermissionSendMessages
		deny |= discordgo.PermissionSendMessages
	} else {
		deny &^= discordgo.PermissionSendMessages
	}
	return a.session.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, allow, deny)
}

func (a *discordActions) DeleteMessage(channelID, messageID string) error {
	return a.session.ChannelMessageDelete(channelID, messageID)
}

func (a *discordActions) RecentMessages(channelID, beforeID string, limit int) ([]string, error) {
	messages, err := a.session.ChannelMessages(channelID, limit, beforeID, "", "")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}
	return ids, nil
}

func (a *discordActions) BulkDelete(channelID string, messageIDs []string) error {
	return a.session.ChannelMessagesBulkDelete(channelID, messageIDs)
}

func (a *discordActions) ListBans(guildID string) ([]string, error) {
	bans, err := a.session.GuildBans(guildID, 100, "", "")
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(bans))
	for _, ban := range bans {
		if ban.User == nil {
			continue
		}
		lines = append(lines, ban.User.String())
	}
	return lines, nil
}

func (a *discordActions) ListRoles(guildID string) ([]string, error) {
	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}

func (a *discordActions) ListChannels(guildID string) ([]string, error) {
	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(channels))
	for _, channel := range channels {
		names = append(names, channel.Name)
	}
	return names, nil
}

func (a *discordActions) MemberPermissions(guildID, channelID, userID string) (int64, bool) {
	perms, err := a.session.UserChannelPermissions(userID, channelID)
	if err != nil {
		return 0, false
	}
	return perms, true
}

func (a *discordActions) MemberRoles(guildID, userID string) []string {
	member, err := a.session.State.Member(guildID, userID)
	if err != nil || member == nil {
		member, err = a.session.GuildMember(guildID, userID)
		if err != nil || member == nil {
			return nil
		}
	}
	return member.Roles
}

type discordResponder struct {
	session *discordgo.Session
	logger  *zap.Logger
}

func (r *discordResponder) Reply(msg *discordgo.Message, content string) error {
	_, err := r.session.ChannelMessageSendReply(msg.ChannelID, content, msg.Reference())
	return err
}

func (r *discordResponder) ReplyEmbed(msg *discordgo.Message, embed *discordgo.MessageEmbed) error {
	_, err := r.session.ChannelMessageSendEmbedReply(msg.ChannelID, embed, msg.Reference())
	return err
}

func (r *discordResponder) Temporary(channelID, content string, ttl time.Duration) {
	posted, err := r.session.ChannelMessageSend(channelID, content)
	if err != nil {
		r.logger.Warn("notice send failed", zap.Error(err))
		return
	}
	go func() {
		time.Sleep(ttl)
		if err := r.session.ChannelMessageDelete(channelID, posted.ID); err != nil {
			r.logger.Debug("notice cleanup failed", zap.Error(err))
		}
	}()
}
