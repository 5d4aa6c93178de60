package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warden-moderation/internal/analytics"
	"warden-moderation/internal/config"
	"warden-moderation/internal/modules/afk"
	"warden-moderation/internal/modules/audit"
	"warden-moderation/internal/modules/automod"
	"warden-moderation/internal/permissions"
	"warden-moderation/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *storage.Store
	resolver  *permissions.Resolver
	afk       *afk.Tracker
	filter    *automod.Filter
	audit     *audit.Recorder
	analytics *analytics.Service
	session   *discordgo.Session
	actions   Actions
	responder Responder
	commands  map[string]command
	stopSweep chan struct{}
}

func New(cfg config.Config, logger *zap.Logger, store *storage.Store) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		resolver:  permissions.NewResolver(cfg.OwnerID, store),
		afk:       afk.NewTracker(),
		filter:    automod.NewFilter(),
		audit:     audit.NewRecorder(store, logger),
		analytics: analytics.New(store),
		session:   session,
		actions:   &discordActions{session: session},
		responder: &discordResponder{session: session, logger: logger},
		stopSweep: make(chan struct{}),
	}
	b.commands = b.commandTable()

	return b, nil
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	b.startMuteSweep()

	return nil
}

func (b *Bot) Close(ctx context.Context) {
	_ = ctx
	close(b.stopSweep)
	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready", zap.String("user", session.State.User.Username))
}

// onMessageCreate runs the fixed per-message pipeline: AFK clear and mention
// notices first, then the automod filter, then prefix command dispatch.
// Automod deleting a message does not stop command recognition; the raw
// content already arrived with the event.
func (b *Bot) onMessageCreate(session *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}
	if msg.GuildID == "" {
		return
	}

	ctx := context.Background()
	b.handleAFK(ctx, msg.Message)
	b.runAutomod(ctx, msg.Message)
	b.dispatch(ctx, msg.Message)
}

func (b *Bot) handleAFK(ctx context.Context, msg *discordgo.Message) {
	_ = ctx
	afkInvocation := b.cfg.Prefix + "afk"
	if !strings.HasPrefix(msg.Content, afkInvocation) {
		if entry, ok := b.afk.Clear(msg.Author.ID); ok {
			b.reply(msg, fmt.Sprintf("👋 Welcome back! You were AFK for %d minute(s): %s", b.afk.Minutes(entry), entry.Reason))
		}
	}

	for _, mentioned := range msg.Mentions {
		if mentioned == nil {
			continue
		}
		if entry, ok := b.afk.Get(mentioned.ID); ok {
			b.reply(msg, fmt.Sprintf("💤 %s is currently AFK (%d minute(s) ago): %s", mentioned.Username, b.afk.Minutes(entry), entry.Reason))
		}
	}
}

func (b *Bot) runAutomod(ctx context.Context, msg *discordgo.Message) {
	settings, err := b.store.GetAutomodSettings(ctx, msg.GuildID)
	if err != nil {
		b.logger.Warn("automod settings load failed", zap.Error(err))
		return
	}
	if !settings.Enabled {
		return
	}

	words, err := b.store.ListBannedWords(ctx, msg.GuildID)
	if err != nil {
		b.logger.Warn("banned words load failed", zap.Error(err))
		return
	}

	cfg := automod.Config{
		Enabled:     settings.Enabled,
		AntiLink:    settings.AntiLink,
		AntiCaps:    settings.AntiCaps,
		AntiSpam:    settings.AntiSpam,
		BannedWords: words,
	}

	decision := b.filter.Evaluate(automod.Message{
		ChannelID:   msg.ChannelID,
		AuthorID:    msg.Author.ID,
		AuthorRoles: b.authorRoles(msg),
		Content:     msg.Content,
	}, cfg, b.loadExemptions(ctx, msg.GuildID))

	if !decision.Delete {
		return
	}

	// Deletion failures are logged, never propagated.
	if err := b.actions.DeleteMessage(msg.ChannelID, msg.ID); err != nil {
		b.logger.Warn("automod delete failed",
			zap.String("guild_id", msg.GuildID),
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
	notice := fmt.Sprintf("⚠️ <@%s>, your message was removed by automod (%s).", msg.Author.ID, decision.Rule)
	b.responder.Temporary(msg.ChannelID, notice, time.Duration(b.cfg.NoticeSeconds)*time.Second)
	b.logger.Info("automod deleted message",
		zap.String("guild_id", msg.GuildID),
		zap.String("user_id", msg.Author.ID),
		zap.String("rule", decision.Rule))
}

func (b *Bot) loadExemptions(ctx context.Context, guildID string) automod.Exemptions {
	exemptions := automod.Exemptions{
		IgnoredChannels: make(map[string]struct{}),
		WhitelistUsers:  make(map[string]struct{}),
		WhitelistRoles:  make(map[string]struct{}),
	}
	if channels, err := b.store.ListIgnoredChannels(ctx, guildID); err == nil {
		for _, id := range channels {
			exemptions.IgnoredChannels[id] = struct{}{}
		}
	}
	if users, err := b.store.ListWhitelistUsers(ctx, guildID); err == nil {
		for _, id := range users {
			exemptions.WhitelistUsers[id] = struct{}{}
		}
	}
	if roles, err := b.store.ListWhitelistRoles(ctx, guildID); err == nil {
		for _, id := range roles {
			exemptions.WhitelistRoles[id] = struct{}{}
		}
	}
	return exemptions
}

func (b *Bot) authorRoles(msg *discordgo.Message) []string {
	if msg.Member != nil && len(msg.Member.Roles) > 0 {
		return msg.Member.Roles
	}
	return b.actions.MemberRoles(msg.GuildID, msg.Author.ID)
}

func (b *Bot) startMuteSweep() {
	interval := time.Duration(b.cfg.MuteSweepSeconds) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stopSweep:
				return
			case <-ticker.C:
				b.sweepExpiredMutes(context.Background())
			}
		}
	}()
}

func (b *Bot) sweepExpiredMutes(ctx context.Context) {
	expired, err := b.store.ListExpiredMutes(ctx, time.Now().UnixMilli())
	if err != nil {
		b.logger.Warn("mute sweep query failed", zap.Error(err))
		return
	}

	for _, mute := range expired {
		roleID, err := b.actions.FindRoleByName(mute.GuildID, b.cfg.MuteRoleName)
		if err != nil {
			b.logger.Warn("mute sweep role lookup failed",
				zap.String("guild_id", mute.GuildID), zap.Error(err))
			continue
		}
		if roleID != "" {
			if err := b.actions.RevokeRole(mute.GuildID, mute.UserID, roleID); err != nil {
				b.logger.Warn("mute sweep role removal failed",
					zap.String("guild_id", mute.GuildID),
					zap.String("user_id", mute.UserID),
					zap.Error(err))
			}
		}
		if err := b.store.DeleteMute(ctx, mute.GuildID, mute.UserID); err != nil {
			b.logger.Warn("mute sweep record delete failed",
				zap.String("user_id", mute.UserID), zap.Error(err))
			continue
		}
		b.logger.Info("mute expired",
			zap.String("guild_id", mute.GuildID),
			zap.String("user_id", mute.UserID))
	}
}

func (b *Bot) reply(msg *discordgo.Message, content string) {
	if err := b.responder.Reply(msg, content); err != nil {
		b.logger.Warn("reply failed", zap.String("channel_id", msg.ChannelID), zap.Error(err))
	}
}
