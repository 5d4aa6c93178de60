package bot

import (
	"context"
	"fmt"
	"strings"

	"warden-moderation/internal/permissions"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type event struct {
	msg  *discordgo.Message
	args []string
}

type handlerFunc func(ctx context.Context, ev event)

type command struct {
	name       string
	capability permissions.Capability
	usage      string
	run        handlerFunc
}

func (b *Bot) commandTable() map[string]command {
	table := []command{
		{name: "help", capability: permissions.CapNone, usage: "help", run: b.cmdHelp},
		{name: "afk", capability: permissions.CapNone, usage: "afk [reason]", run: b.cmdAFK},
		{name: "ban", capability: permissions.CapBanMembers, usage: "ban @user [reason]", run: b.cmdBan},
		{name: "unban", capability: permissions.CapBanMembers, usage: "unban <userID>", run: b.cmdUnban},
		{name: "kick", capability: permissions.CapKickMembers, usage: "kick @user [reason]", run: b.cmdKick},
		{name: "mute", capability: permissions.CapManageRoles, usage: "mute @user 10m", run: b.cmdMute},
		{name: "unmute", capability: permissions.CapManageRoles, usage: "unmute @user", run: b.cmdUnmute},
		{name: "warn", capability: permissions.CapManageMessages, usage: "warn @user [reason]", run: b.cmdWarn},
		{name: "warnings", capability: permissions.CapManageMessages, usage: "warnings @user", run: b.cmdWarnings},
		{name: "removewarning", capability: permissions.CapManageMessages, usage: "removewarning @user <number>", run: b.cmdRemoveWarning},
		{name: "clearwarnings", capability: permissions.CapManageMessages, usage: "clearwarnings @user", run: b.cmdClearWarnings},
		{name: "purge", capability: permissions.CapManageMessages, usage: "purge <count>", run: b.cmdPurge},
		{name: "lock", capability: permissions.CapManageChannels, usage: "lock [#channel]", run: b.cmdLock},
		{name: "unlock", capability: permissions.CapManageChannels, usage: "unlock [#channel]", run: b.cmdUnlock},
		{name: "nick", capability: permissions.CapManageNicknames, usage: "nick @user <new name>", run: b.cmdNick},
		{name: "automod", capability: permissions.CapAdministrator, usage: "automod <on|off|antilink|anticaps|antispam|addword|removeword|words|status>", run: b.cmdAutomod},
		{name: "ignore", capability: permissions.CapAdministrator, usage: "ignore <add|remove|list> [#channel]", run: b.cmdIgnore},
		{name: "whitelist", capability: permissions.CapAdministrator, usage: "whitelist <user|role> <add|remove> ... | whitelist list", run: b.cmdWhitelist},
		{name: "list", capability: permissions.CapManageServer, usage: "list <bans|roles|channels>", run: b.cmdList},
		{name: "modstats", capability: permissions.CapManageServer, usage: "modstats [days]", run: b.cmdModStats},
		{name: "addowner", capability: permissions.CapOwnerOnly, usage: "addowner @user", run: b.cmdAddOwner},
		{name: "removeowner", capability: permissions.CapOwnerOnly, usage: "removeowner @user", run: b.cmdRemoveOwner},
	}

	byName := make(map[string]command, len(table))
	for _, cmd := range table {
		byName[cmd.name] = cmd
	}
	return byName
}

func (b *Bot) dispatch(ctx context.Context, msg *discordgo.Message) {
	if !strings.HasPrefix(msg.Content, b.cfg.Prefix) {
		return
	}

	fields := strings.Fields(msg.Content[len(b.cfg.Prefix):])
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	cmd, ok := b.commands[name]
	if !ok {
		// Unknown commands stay silent so the prefix can coexist with
		// ordinary chat.
		return
	}

	granted, hasMember := b.actions.MemberPermissions(msg.GuildID, msg.ChannelID, msg.Author.ID)
	if !b.resolver.Authorize(ctx, msg.Author.ID, granted, hasMember, cmd.capability) {
		b.reply(msg, fmt.Sprintf("❌ You need the %q permission to use this command.", cmd.capability.Name()))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("command handler panicked",
				zap.String("command", name),
				zap.String("guild_id", msg.GuildID),
				zap.Any("panic", r))
		}
	}()

	cmd.run(ctx, event{msg: msg, args: fields[1:]})
}
