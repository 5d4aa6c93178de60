package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"warden-moderation/internal/storage"
	"warden-moderation/internal/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func firstMention(ev event) (*discordgo.User, bool) {
	for _, user := range ev.msg.Mentions {
		if user != nil {
			return user, true
		}
	}
	return nil, false
}

// channelToken extracts the channel ID from a <#123> argument.
func channelToken(arg string) (string, bool) {
	if strings.HasPrefix(arg, "<#") && strings.HasSuffix(arg, ">") && len(arg) > 3 {
		return arg[2 : len(arg)-1], true
	}
	return "", false
}

func (b *Bot) reasonFrom(args []string) string {
	if len(args) == 0 {
		return b.cfg.DefaultWarnReason
	}
	return strings.Join(args, " ")
}

// rest drops the leading target token from a command's arguments.
func rest(args []string) []string {
	if len(args) < 2 {
		return nil
	}
	return args[1:]
}

func (b *Bot) cmdBan(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to ban.")
		return
	}
	reason := b.reasonFrom(rest(ev.args))
	if err := b.actions.Ban(ev.msg.GuildID, target.ID, reason); err != nil {
		b.logger.Warn("ban failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to ban %s: %v", target.Username, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "ban", reason)
	b.reply(ev.msg, fmt.Sprintf("✅ Banned %s", target.Username))
}

func (b *Bot) cmdUnban(ctx context.Context, ev event) {
	if len(ev.args) == 0 {
		b.reply(ev.msg, "❌ Please provide a user ID to unban.")
		return
	}
	userID := ev.args[0]
	if err := b.actions.Unban(ev.msg.GuildID, userID); err != nil {
		b.logger.Warn("unban failed", zap.String("user_id", userID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to unban user with ID %s: %v", userID, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, userID, "unban", "")
	b.reply(ev.msg, fmt.Sprintf("✅ Unbanned user with ID: %s", userID))
}

func (b *Bot) cmdKick(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to kick.")
		return
	}
	reason := b.reasonFrom(rest(ev.args))
	if err := b.actions.Kick(ev.msg.GuildID, target.ID, reason); err != nil {
		b.logger.Warn("kick failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to kick %s: %v", target.Username, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "kick", reason)
	b.reply(ev.msg, fmt.Sprintf("✅ Kicked %s", target.Username))
}

func (b *Bot) cmdMute(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok || len(ev.args) < 2 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %smute @user 10m", b.cfg.Prefix))
		return
	}
	durationToken := ev.args[1]
	duration, err := utils.ParseShortDuration(durationToken)
	if err != nil {
		b.reply(ev.msg, fmt.Sprintf("Usage: %smute @user 10m", b.cfg.Prefix))
		return
	}

	// Role changes happen before anything is persisted so a failed grant
	// never leaves a mute record without the role.
	roleID, err := b.actions.EnsureRole(ev.msg.GuildID, b.cfg.MuteRoleName)
	if err != nil {
		b.logger.Warn("mute role lookup failed", zap.String("guild_id", ev.msg.GuildID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to mute %s: %v", target.Username, err))
		return
	}
	if err := b.actions.GrantRole(ev.msg.GuildID, target.ID, roleID); err != nil {
		b.logger.Warn("mute role grant failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to mute %s: %v", target.Username, err))
		return
	}

	expiresAt := time.Now().Add(duration).UnixMilli()
	if err := b.store.SetMute(ctx, ev.msg.GuildID, target.ID, expiresAt); err != nil {
		b.logger.Error("mute record write failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to mute %s: %v", target.Username, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "mute", durationToken)
	b.reply(ev.msg, fmt.Sprintf("✅ Muted %s for %s", target.Username, durationToken))
}

func (b *Bot) cmdUnmute(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to unmute.")
		return
	}

	roleID, err := b.actions.FindRoleByName(ev.msg.GuildID, b.cfg.MuteRoleName)
	if err != nil {
		b.logger.Warn("unmute role lookup failed", zap.String("guild_id", ev.msg.GuildID), zap.Error(err))
	}
	if roleID != "" {
		if err := b.actions.RevokeRole(ev.msg.GuildID, target.ID, roleID); err != nil {
			b.logger.Warn("unmute role removal failed", zap.String("user_id", target.ID), zap.Error(err))
		}
	}
	if err := b.store.DeleteMute(ctx, ev.msg.GuildID, target.ID); err != nil {
		b.logger.Error("mute record delete failed", zap.String("user_id", target.ID), zap.Error(err))
	}
	// Unmuting someone who was never muted succeeds with the same reply.
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "unmute", "")
	b.reply(ev.msg, fmt.Sprintf("✅ Unmuted %s", target.Username))
}

func (b *Bot) cmdWarn(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to warn.")
		return
	}
	reason := b.reasonFrom(rest(ev.args))
	if err := b.store.AddWarning(ctx, ev.msg.GuildID, target.ID, reason); err != nil {
		b.logger.Error("warning write failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to warn %s: %v", target.Username, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "warn", reason)
	b.reply(ev.msg, fmt.Sprintf("⚠️ Warned %s: %s", target.Username, reason))
}

func (b *Bot) cmdWarnings(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to look up.")
		return
	}
	warnings, err := b.store.ListWarnings(ctx, ev.msg.GuildID, target.ID)
	if err != nil {
		b.logger.Error("warning lookup failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to look up warnings: %v", err))
		return
	}
	if len(warnings) == 0 {
		b.reply(ev.msg, "No warnings.")
		return
	}
	lines := make([]string, len(warnings))
	for i, reason := range warnings {
		lines[i] = fmt.Sprintf("%d. %s", i+1, reason)
	}
	b.reply(ev.msg, fmt.Sprintf("⚠️ Warnings for %s:\n%s", target.Username, strings.Join(lines, "\n")))
}

func (b *Bot) cmdRemoveWarning(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok || len(ev.args) < 2 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %sremovewarning @user <number>", b.cfg.Prefix))
		return
	}
	position, err := strconv.Atoi(ev.args[1])
	if err != nil {
		b.reply(ev.msg, fmt.Sprintf("Usage: %sremovewarning @user <number>", b.cfg.Prefix))
		return
	}

	reason, total, err := b.store.RemoveWarning(ctx, ev.msg.GuildID, target.ID, position)
	switch {
	case errors.Is(err, storage.ErrNoWarnings):
		b.reply(ev.msg, "❌ This user has no warnings.")
	case errors.Is(err, storage.ErrWarningOutOfRange):
		b.reply(ev.msg, fmt.Sprintf("❌ This user only has %d warning(s).", total))
	case err != nil:
		b.logger.Error("warning removal failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to remove the warning: %v", err))
	default:
		b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "removewarning", reason)
		b.reply(ev.msg, fmt.Sprintf("✅ Removed warning #%d from %s: %q", position, target.Username, reason))
	}
}

func (b *Bot) cmdClearWarnings(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to clear.")
		return
	}
	if err := b.store.ClearWarnings(ctx, ev.msg.GuildID, target.ID); err != nil {
		b.logger.Error("warning clear failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to clear warnings: %v", err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "clearwarnings", "")
	b.reply(ev.msg, fmt.Sprintf("✅ Cleared warnings for %s", target.Username))
}

func (b *Bot) cmdPurge(ctx context.Context, ev event) {
	if len(ev.args) == 0 {
		b.reply(ev.msg, "❌ Provide a number of messages to delete (1-100).")
		return
	}
	count, err := strconv.Atoi(ev.args[0])
	if err != nil || count < 1 || count > 100 {
		b.reply(ev.msg, "❌ Provide a number of messages to delete (1-100).")
		return
	}

	ids, err := b.actions.RecentMessages(ev.msg.ChannelID, ev.msg.ID, count)
	if err != nil {
		b.logger.Warn("purge fetch failed", zap.String("channel_id", ev.msg.ChannelID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to fetch messages: %v", err))
		return
	}
	if len(ids) == 0 {
		b.reply(ev.msg, "✅ Deleted 0 messages.")
		return
	}
	if err := b.actions.BulkDelete(ev.msg.ChannelID, ids); err != nil {
		b.logger.Warn("purge delete failed", zap.String("channel_id", ev.msg.ChannelID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to delete messages: %v", err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, ev.msg.ChannelID, "purge", strconv.Itoa(len(ids)))
	b.responder.Temporary(ev.msg.ChannelID, fmt.Sprintf("✅ Deleted %d messages.", len(ids)), time.Duration(b.cfg.NoticeSeconds)*time.Second)
}

func (b *Bot) targetChannel(ev event) string {
	if len(ev.args) > 0 {
		if id, ok := channelToken(ev.args[0]); ok {
			return id
		}
	}
	return ev.msg.ChannelID
}

func (b *Bot) cmdLock(ctx context.Context, ev event) {
	channelID := b.targetChannel(ev)
	if err := b.actions.SetChannelSendLock(ev.msg.GuildID, channelID, true); err != nil {
		b.logger.Warn("channel lock failed", zap.String("channel_id", channelID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to lock the channel: %v", err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, channelID, "lock", "")
	b.reply(ev.msg, fmt.Sprintf("🔒 Locked <#%s>", channelID))
}

func (b *Bot) cmdUnlock(ctx context.Context, ev event) {
	channelID := b.targetChannel(ev)
	if err := b.actions.SetChannelSendLock(ev.msg.GuildID, channelID, false); err != nil {
		b.logger.Warn("channel unlock failed", zap.String("channel_id", channelID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to unlock the channel: %v", err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, channelID, "unlock", "")
	b.reply(ev.msg, fmt.Sprintf("🔓 Unlocked <#%s>", channelID))
}

func (b *Bot) cmdNick(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok || len(ev.args) < 2 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %snick @user <new name>", b.cfg.Prefix))
		return
	}
	nick := strings.Join(ev.args[1:], " ")
	if err := b.actions.SetNickname(ev.msg.GuildID, target.ID, nick); err != nil {
		b.logger.Warn("nickname change failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to change nickname for %s: %v", target.Username, err))
		return
	}
	b.audit.Record(ctx, ev.msg.GuildID, ev.msg.Author.ID, target.ID, "nick", nick)
	b.reply(ev.msg, fmt.Sprintf("✅ Changed nickname for %s", target.Username))
}

func (b *Bot) cmdAutomod(ctx context.Context, ev event) {
	if len(ev.args) == 0 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %sautomod <on|off|antilink|anticaps|antispam|addword|removeword|words|status>", b.cfg.Prefix))
		return
	}

	settings, err := b.store.GetAutomodSettings(ctx, ev.msg.GuildID)
	if err != nil {
		b.logger.Error("automod settings load failed", zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to load automod settings: %v", err))
		return
	}

	switch strings.ToLower(ev.args[0]) {
	case "on":
		settings.Enabled = true
		if b.saveAutomod(ctx, ev, settings) {
			b.reply(ev.msg, "✅ Automod enabled.")
		}
	case "off":
		settings.Enabled = false
		if b.saveAutomod(ctx, ev, settings) {
			b.reply(ev.msg, "✅ Automod disabled.")
		}
	case "antilink":
		settings.AntiLink = toggleArg(ev.args, settings.AntiLink)
		if b.saveAutomod(ctx, ev, settings) {
			b.reply(ev.msg, fmt.Sprintf("✅ Anti-link is now %s.", onOff(settings.AntiLink)))
		}
	case "anticaps":
		settings.AntiCaps = toggleArg(ev.args, settings.AntiCaps)
		if b.saveAutomod(ctx, ev, settings) {
			b.reply(ev.msg, fmt.Sprintf("✅ Anti-caps is now %s.", onOff(settings.AntiCaps)))
		}
	case "antispam":
		settings.AntiSpam = toggleArg(ev.args, settings.AntiSpam)
		if b.saveAutomod(ctx, ev, settings) {
			b.reply(ev.msg, fmt.Sprintf("✅ Anti-spam is now %s.", onOff(settings.AntiSpam)))
		}
	case "addword":
		if len(ev.args) < 2 {
			b.reply(ev.msg, fmt.Sprintf("Usage: %sautomod addword <word>", b.cfg.Prefix))
			return
		}
		word := strings.ToLower(ev.args[1])
		if err := b.store.AddBannedWord(ctx, ev.msg.GuildID, word); err != nil {
			b.logger.Error("banned word add failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to save the banned word: %v", err))
			return
		}
		b.reply(ev.msg, fmt.Sprintf("✅ Added %q to the banned words list.", word))
	case "removeword":
		if len(ev.args) < 2 {
			b.reply(ev.msg, fmt.Sprintf("Usage: %sautomod removeword <word>", b.cfg.Prefix))
			return
		}
		word := strings.ToLower(ev.args[1])
		if err := b.store.RemoveBannedWord(ctx, ev.msg.GuildID, word); err != nil {
			b.logger.Error("banned word removal failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to remove the banned word: %v", err))
			return
		}
		b.reply(ev.msg, fmt.Sprintf("✅ Removed %q from the banned words list.", word))
	case "words":
		words, err := b.store.ListBannedWords(ctx, ev.msg.GuildID)
		if err != nil {
			b.logger.Error("banned word list failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to list banned words: %v", err))
			return
		}
		if len(words) == 0 {
			b.reply(ev.msg, "No banned words.")
			return
		}
		b.reply(ev.msg, "Banned words: "+strings.Join(words, ", "))
	case "status":
		b.reply(ev.msg, fmt.Sprintf(
			"Automod: %s\nAnti-link: %s\nAnti-caps: %s\nAnti-spam: %s",
			onOff(settings.Enabled), onOff(settings.AntiLink),
			onOff(settings.AntiCaps), onOff(settings.AntiSpam)))
	default:
		b.reply(ev.msg, fmt.Sprintf("Usage: %sautomod <on|off|antilink|anticaps|antispam|addword|removeword|words|status>", b.cfg.Prefix))
	}
}

func (b *Bot) saveAutomod(ctx context.Context, ev event, settings storage.AutomodSettings) bool {
	settings.GuildID = ev.msg.GuildID
	if err := b.store.UpsertAutomodSettings(ctx, settings); err != nil {
		b.logger.Error("automod settings write failed", zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to save automod settings: %v", err))
		return false
	}
	return true
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// toggleArg flips the current value, or sets it when an explicit on/off
// follows the subcommand.
func toggleArg(args []string, current bool) bool {
	if len(args) >= 2 {
		switch strings.ToLower(args[1]) {
		case "on":
			return true
		case "off":
			return false
		}
	}
	return !current
}

func (b *Bot) cmdIgnore(ctx context.Context, ev event) {
	if len(ev.args) == 0 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %signore <add|remove|list> [#channel]", b.cfg.Prefix))
		return
	}

	switch strings.ToLower(ev.args[0]) {
	case "add":
		channelID := b.targetChannel(event{msg: ev.msg, args: ev.args[1:]})
		if err := b.store.AddIgnoredChannel(ctx, ev.msg.GuildID, channelID); err != nil {
			b.logger.Error("ignored channel add failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to save the ignored channel: %v", err))
			return
		}
		b.reply(ev.msg, fmt.Sprintf("✅ Automod will ignore <#%s>.", channelID))
	case "remove":
		channelID := b.targetChannel(event{msg: ev.msg, args: ev.args[1:]})
		if err := b.store.RemoveIgnoredChannel(ctx, ev.msg.GuildID, channelID); err != nil {
			b.logger.Error("ignored channel removal failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to remove the ignored channel: %v", err))
			return
		}
		b.reply(ev.msg, fmt.Sprintf("✅ Automod no longer ignores <#%s>.", channelID))
	case "list":
		channels, err := b.store.ListIgnoredChannels(ctx, ev.msg.GuildID)
		if err != nil {
			b.logger.Error("ignored channel list failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to list ignored channels: %v", err))
			return
		}
		if len(channels) == 0 {
			b.reply(ev.msg, "No ignored channels.")
			return
		}
		mentions := make([]string, len(channels))
		for i, id := range channels {
			mentions[i] = "<#" + id + ">"
		}
		b.reply(ev.msg, "Ignored channels: "+strings.Join(mentions, ", "))
	default:
		b.reply(ev.msg, fmt.Sprintf("Usage: %signore <add|remove|list> [#channel]", b.cfg.Prefix))
	}
}

func (b *Bot) cmdWhitelist(ctx context.Context, ev event) {
	usage := fmt.Sprintf("Usage: %swhitelist <user|role> <add|remove> @target, or %swhitelist list", b.cfg.Prefix, b.cfg.Prefix)
	if len(ev.args) == 0 {
		b.reply(ev.msg, usage)
		return
	}

	switch strings.ToLower(ev.args[0]) {
	case "list":
		users, err := b.store.ListWhitelistUsers(ctx, ev.msg.GuildID)
		if err != nil {
			b.logger.Error("whitelist list failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to list the whitelist: %v", err))
			return
		}
		roles, err := b.store.ListWhitelistRoles(ctx, ev.msg.GuildID)
		if err != nil {
			b.logger.Error("whitelist list failed", zap.Error(err))
			b.reply(ev.msg, fmt.Sprintf("❌ Failed to list the whitelist: %v", err))
			return
		}
		if len(users) == 0 && len(roles) == 0 {
			b.reply(ev.msg, "The automod whitelist is empty.")
			return
		}
		var lines []string
		for _, id := range users {
			lines = append(lines, "<@"+id+">")
		}
		for _, id := range roles {
			lines = append(lines, "<@&"+id+">")
		}
		b.reply(ev.msg, "Whitelisted: "+strings.Join(lines, ", "))
	case "user":
		if len(ev.args) < 2 {
			b.reply(ev.msg, usage)
			return
		}
		target, ok := firstMention(ev)
		if !ok {
			b.reply(ev.msg, usage)
			return
		}
		switch strings.ToLower(ev.args[1]) {
		case "add":
			if err := b.store.AddWhitelistUser(ctx, ev.msg.GuildID, target.ID); err != nil {
				b.logger.Error("whitelist user add failed", zap.Error(err))
				b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the whitelist: %v", err))
				return
			}
			b.reply(ev.msg, fmt.Sprintf("✅ %s is now exempt from automod.", target.Username))
		case "remove":
			if err := b.store.RemoveWhitelistUser(ctx, ev.msg.GuildID, target.ID); err != nil {
				b.logger.Error("whitelist user removal failed", zap.Error(err))
				b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the whitelist: %v", err))
				return
			}
			b.reply(ev.msg, fmt.Sprintf("✅ %s is no longer exempt from automod.", target.Username))
		default:
			b.reply(ev.msg, usage)
		}
	case "role":
		if len(ev.args) < 2 || len(ev.msg.MentionRoles) == 0 {
			b.reply(ev.msg, usage)
			return
		}
		roleID := ev.msg.MentionRoles[0]
		switch strings.ToLower(ev.args[1]) {
		case "add":
			if err := b.store.AddWhitelistRole(ctx, ev.msg.GuildID, roleID); err != nil {
				b.logger.Error("whitelist role add failed", zap.Error(err))
				b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the whitelist: %v", err))
				return
			}
			b.reply(ev.msg, fmt.Sprintf("✅ Members with <@&%s> are now exempt from automod.", roleID))
		case "remove":
			if err := b.store.RemoveWhitelistRole(ctx, ev.msg.GuildID, roleID); err != nil {
				b.logger.Error("whitelist role removal failed", zap.Error(err))
				b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the whitelist: %v", err))
				return
			}
			b.reply(ev.msg, fmt.Sprintf("✅ Members with <@&%s> are no longer exempt from automod.", roleID))
		default:
			b.reply(ev.msg, usage)
		}
	default:
		b.reply(ev.msg, usage)
	}
}

func (b *Bot) cmdList(ctx context.Context, ev event) {
	_ = ctx
	if len(ev.args) == 0 {
		b.reply(ev.msg, fmt.Sprintf("Usage: %slist <bans|roles|channels>", b.cfg.Prefix))
		return
	}

	var (
		header string
		items  []string
		err    error
	)
	switch strings.ToLower(ev.args[0]) {
	case "bans":
		header = "🔨 Bans"
		items, err = b.actions.ListBans(ev.msg.GuildID)
	case "roles":
		header = "📜 Roles"
		items, err = b.actions.ListRoles(ev.msg.GuildID)
	case "channels":
		header = "📺 Channels"
		items, err = b.actions.ListChannels(ev.msg.GuildID)
	default:
		b.reply(ev.msg, fmt.Sprintf("Usage: %slist <bans|roles|channels>", b.cfg.Prefix))
		return
	}
	if err != nil {
		b.logger.Warn("guild listing failed", zap.String("guild_id", ev.msg.GuildID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to fetch the list: %v", err))
		return
	}
	if len(items) == 0 {
		b.reply(ev.msg, header+": none")
		return
	}
	b.reply(ev.msg, header+":\n"+strings.Join(items, "\n"))
}

func (b *Bot) cmdAFK(ctx context.Context, ev event) {
	_ = ctx
	reason := strings.Join(ev.args, " ")
	entry := b.afk.Set(ev.msg.Author.ID, reason)
	b.reply(ev.msg, fmt.Sprintf("✅ You are now AFK: %s", entry.Reason))
}

func (b *Bot) cmdAddOwner(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to add as an owner.")
		return
	}
	added, err := b.store.AddOwner(ctx, target.ID)
	if err != nil {
		b.logger.Error("owner add failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the owner list: %v", err))
		return
	}
	if !added {
		b.reply(ev.msg, "❌ This user is already an additional owner.")
		return
	}
	b.reply(ev.msg, fmt.Sprintf("✅ Added %s as an additional bot owner.", target.Username))
}

func (b *Bot) cmdRemoveOwner(ctx context.Context, ev event) {
	target, ok := firstMention(ev)
	if !ok {
		b.reply(ev.msg, "❌ Please mention a user to remove as an owner.")
		return
	}
	removed, err := b.store.RemoveOwner(ctx, target.ID)
	if err != nil {
		b.logger.Error("owner removal failed", zap.String("user_id", target.ID), zap.Error(err))
		b.reply(ev.msg, fmt.Sprintf("❌ Failed to update the owner list: %v", err))
		return
	}
	if !removed {
		b.reply(ev.msg, "❌ This user is not an additional owner.")
		return
	}
	b.reply(ev.msg, fmt.Sprintf("✅ Removed %s from additional bot owners.", target.Username))
}

func (b *Bot) cmdModStats(ctx context.Context, ev event) {
	days := 7
	if len(ev.args) > 0 {
		if parsed, err := strconv.Atoi(ev.args[0]); err == nil && parsed > 0 && parsed <= 90 {
			days = parsed
		}
	}
	since := time.Now().AddDate(0, 0, -days)
	report, err := b.analytics.Report(ctx, ev.msg.GuildID, since)
	if err != nil {
		b.logger.Error("moderation report failed", zap.String("guild_id", ev.msg.GuildID), zap.Error(err))
		b.reply(ev.msg, "❌ Failed to build the report.")
		return
	}
	if report.Total == 0 {
		b.reply(ev.msg, fmt.Sprintf("No moderation actions in the last %d day(s).", days))
		return
	}
	actions := make([]string, 0, len(report.ByAction))
	for action := range report.ByAction {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	lines := make([]string, len(actions))
	for i, action := range actions {
		lines[i] = fmt.Sprintf("%s: %d", action, report.ByAction[action])
	}
	b.reply(ev.msg, fmt.Sprintf("📊 %d moderation action(s) in the last %d day(s):\n%s",
		report.Total, days, strings.Join(lines, "\n")))
}

func (b *Bot) cmdHelp(ctx context.Context, ev event) {
	_ = ctx
	prefix := b.cfg.Prefix
	embed := &discordgo.MessageEmbed{
		Title: "Warden Commands",
		Color: 0x0099ff,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Moderation",
				Value: fmt.Sprintf(
					"`%sban @user [reason]`\n`%sunban <userID>`\n`%skick @user [reason]`\n`%smute @user 10m`\n`%sunmute @user`\n`%spurge <count>`\n`%slock [#channel]`\n`%sunlock [#channel]`\n`%snick @user <new name>`",
					prefix, prefix, prefix, prefix, prefix, prefix, prefix, prefix, prefix),
			},
			{
				Name: "Warnings",
				Value: fmt.Sprintf(
					"`%swarn @user [reason]`\n`%swarnings @user`\n`%sremovewarning @user <number>`\n`%sclearwarnings @user`",
					prefix, prefix, prefix, prefix),
			},
			{
				Name: "Automod",
				Value: fmt.Sprintf(
					"`%sautomod <on|off|antilink|anticaps|antispam|addword|removeword|words|status>`\n`%signore <add|remove|list> [#channel]`\n`%swhitelist <user|role> <add|remove> @target`",
					prefix, prefix, prefix),
			},
			{
				Name: "Utility",
				Value: fmt.Sprintf(
					"`%safk [reason]`\n`%slist <bans|roles|channels>`\n`%smodstats [days]`\n`%shelp`",
					prefix, prefix, prefix, prefix),
			},
			{
				Name: "Owner",
				Value: fmt.Sprintf(
					"`%saddowner @user`\n`%sremoveowner @user`",
					prefix, prefix),
			},
		},
	}
	if err := b.responder.ReplyEmbed(ev.msg, embed); err != nil {
		b.logger.Warn("help reply failed", zap.String("channel_id", ev.msg.ChannelID), zap.Error(err))
	}
}
