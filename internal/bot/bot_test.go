package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
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

type fakeActions struct {
	perms       map[string]int64
	memberRoles map[string][]string
	roleIDs     map[string]string

	failEnsure bool
	failGrant  bool

	banned  []string
	kicked  []string
	granted []string
	revoked []string
	deleted []string
	bulked  [][]string
	recent  []string
	locked  map[string]bool
	nicks   map[string]string
}

func newFakeActions() *fakeActions {
	return &fakeActions{
		perms:       make(map[string]int64),
		memberRoles: make(map[string][]string),
		roleIDs:     map[string]string{"Muted": "role-muted"},
		locked:      make(map[string]bool),
		nicks:       make(map[string]string),
	}
}

func (f *fakeActions) Ban(guildID, userID, reason string) error {
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeActions) Unban(guildID, userID string) error { return nil }

func (f *fakeActions) Kick(guildID, userID, reason string) error {
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeActions) FindRoleByName(guildID, name string) (string, error) {
	return f.roleIDs[name], nil
}

func (f *fakeActions) EnsureRole(guildID, name string) (string, error) {
	if f.failEnsure {
		return "", errors.New("role create rejected")
	}
	return f.roleIDs[name], nil
}

func (f *fakeActions) GrantRole(guildID, userID, roleID string) error {
	if f.failGrant {
		return errors.New("missing permission")
	}
	f.granted = append(f.granted, userID+":"+roleID)
	return nil
}

func (f *fakeActions) RevokeRole(guildID, userID, roleID string) error {
	f.revoked = append(f.revoked, userID+":"+roleID)
	return nil
}

func (f *fakeActions) SetNickname(guildID, userID, nick string) error {
	f.nicks[userID] = nick
	return nil
}

func (f *fakeActions) SetChannelSendLock(guildID, channelID string, locked bool) error {
	f.locked[channelID] = locked
	return nil
}

func (f *fakeActions) DeleteMessage(channelID, messageID string) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeActions) RecentMessages(channelID, beforeID string, limit int) ([]string, error) {
	if limit > len(f.recent) {
		limit = len(f.recent)
	}
	return f.recent[:limit], nil
}

func (f *fakeActions) BulkDelete(channelID string, messageIDs []string) error {
	f.bulked = append(f.bulked, messageIDs)
	return nil
}

func (f *fakeActions) ListBans(guildID string) ([]string, error)  { return []string{"evil#0001"}, nil }
func (f *fakeActions) ListRoles(guildID string) ([]string, error) { return []string{"Muted"}, nil }
func (f *fakeActions) ListChannels(guildID string) ([]string, error) {
	return []string{"general"}, nil
}

func (f *fakeActions) MemberPermissions(guildID, channelID, userID string) (int64, bool) {
	granted, ok := f.perms[userID]
	return granted, ok
}

func (f *fakeActions) MemberRoles(guildID, userID string) []string {
	return f.memberRoles[userID]
}

type fakeResponder struct {
	replies     []string
	embeds      []*discordgo.MessageEmbed
	temporaries []string
}

func (f *fakeResponder) Reply(msg *discordgo.Message, content string) error {
	f.replies = append(f.replies, content)
	return nil
}

func (f *fakeResponder) ReplyEmbed(msg *discordgo.Message, embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

func (f *fakeResponder) Temporary(channelID, content string, ttl time.Duration) {
	f.temporaries = append(f.temporaries, content)
}

func newTestBot(t *testing.T) (*Bot, *fakeActions, *fakeResponder) {
	t.Helper()
	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.OwnerID = "owner-1"

	actions := newFakeActions()
	responder := &fakeResponder{}
	b := &Bot{
		cfg:       cfg,
		logger:    zap.NewNop(),
		store:     store,
		resolver:  permissions.NewResolver(cfg.OwnerID, store),
		afk:       afk.NewTracker(),
		filter:    automod.NewFilter(),
		audit:     audit.NewRecorder(store, zap.NewNop()),
		analytics: analytics.New(store),
		actions:   actions,
		responder: responder,
		stopSweep: make(chan struct{}),
	}
	b.commands = b.commandTable()
	return b, actions, responder
}

func message(authorID, content string, mentions ...*discordgo.User) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg-1",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: "author"},
		Mentions:  mentions,
	}}
}

func TestDispatchDeniesWithoutCapability(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = 0

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$warn <@user-2> spamming", target))

	if len(responder.replies) != 1 || !strings.Contains(responder.replies[0], `"Manage Messages"`) {
		t.Fatalf("replies = %v, want missing-permission notice", responder.replies)
	}
	warnings, err := b.store.ListWarnings(context.Background(), "guild-1", "user-2")
	if err != nil {
		t.Fatalf("list warnings: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("denied command wrote %d warnings", len(warnings))
	}
}

func TestWarnPersistsAndReplies(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionManageMessages

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$warn <@user-2> spamming links", target))

	if len(responder.replies) != 1 || responder.replies[0] != "⚠️ Warned bob: spamming links" {
		t.Fatalf("replies = %v", responder.replies)
	}
	warnings, err := b.store.ListWarnings(context.Background(), "guild-1", "user-2")
	if err != nil {
		t.Fatalf("list warnings: %v", err)
	}
	if len(warnings) != 1 || warnings[0] != "spamming links" {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestUnknownCommandStaysSilent(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionAdministrator

	b.onMessageCreate(nil, message("mod-1", "$frobnicate now"))

	if len(responder.replies) != 0 || len(responder.temporaries) != 0 {
		t.Fatalf("unknown command produced output: %v %v", responder.replies, responder.temporaries)
	}
}

func TestAdditionalOwnerBypassesPlatformChecks(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["owner-1"] = 0
	actions.perms["helper-1"] = 0

	helper := &discordgo.User{ID: "helper-1", Username: "helper"}
	b.onMessageCreate(nil, message("owner-1", "$addowner <@helper-1>", helper))
	if len(responder.replies) != 1 || responder.replies[0] != "✅ Added helper as an additional bot owner." {
		t.Fatalf("addowner replies = %v", responder.replies)
	}

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("helper-1", "$ban <@user-2> raiding", target))
	if len(actions.banned) != 1 || actions.banned[0] != "user-2" {
		t.Fatalf("banned = %v, want additional owner to bypass the bit check", actions.banned)
	}

	// The owner set never grants owner-only commands.
	b.onMessageCreate(nil, message("helper-1", "$addowner <@user-2>", target))
	last := responder.replies[len(responder.replies)-1]
	if !strings.Contains(last, `"Bot Owner"`) {
		t.Fatalf("owner-only command from additional owner replied %q", last)
	}
}

func TestAFKRoundTrip(t *testing.T) {
	b, _, responder := newTestBot(t)

	b.onMessageCreate(nil, message("user-1", "$afk lunch"))
	if len(responder.replies) != 1 || responder.replies[0] != "✅ You are now AFK: lunch" {
		t.Fatalf("afk replies = %v", responder.replies)
	}

	// Someone mentioning the AFK user gets a notice.
	afkUser := &discordgo.User{ID: "user-1", Username: "alice"}
	b.onMessageCreate(nil, message("user-3", "hey <@user-1>", afkUser))
	if len(responder.replies) != 2 || !strings.HasPrefix(responder.replies[1], "💤 alice is currently AFK") {
		t.Fatalf("mention replies = %v", responder.replies)
	}

	// The AFK user speaking clears the state and greets them once.
	b.onMessageCreate(nil, message("user-1", "back"))
	if len(responder.replies) != 3 || !strings.HasPrefix(responder.replies[2], "👋 Welcome back!") {
		t.Fatalf("return replies = %v", responder.replies)
	}
	b.onMessageCreate(nil, message("user-1", "still here"))
	if len(responder.replies) != 3 {
		t.Fatalf("welcome-back fired twice: %v", responder.replies)
	}
}

func TestAutomodDeletesAndNotices(t *testing.T) {
	b, actions, responder := newTestBot(t)
	ctx := context.Background()
	if err := b.store.UpsertAutomodSettings(ctx, storage.AutomodSettings{
		GuildID: "guild-1", Enabled: true, AntiLink: true,
	}); err != nil {
		t.Fatalf("enable automod: %v", err)
	}

	b.onMessageCreate(nil, message("user-1", "check https://example.com"))

	if len(actions.deleted) != 1 || actions.deleted[0] != "msg-1" {
		t.Fatalf("deleted = %v", actions.deleted)
	}
	if len(responder.temporaries) != 1 || !strings.Contains(responder.temporaries[0], "(link)") {
		t.Fatalf("temporaries = %v", responder.temporaries)
	}
}

func TestAutomodDeleteDoesNotBlockDispatch(t *testing.T) {
	b, actions, responder := newTestBot(t)
	ctx := context.Background()
	if err := b.store.AddBannedWord(ctx, "guild-1", "heck"); err != nil {
		t.Fatalf("add banned word: %v", err)
	}
	if err := b.store.UpsertAutomodSettings(ctx, storage.AutomodSettings{
		GuildID: "guild-1", Enabled: true,
	}); err != nil {
		t.Fatalf("enable automod: %v", err)
	}
	actions.perms["mod-1"] = discordgo.PermissionManageMessages

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$warn <@user-2> heck off", target))

	if len(actions.deleted) != 1 {
		t.Fatalf("deleted = %v", actions.deleted)
	}
	found := false
	for _, reply := range responder.replies {
		if strings.HasPrefix(reply, "⚠️ Warned bob") {
			found = true
		}
	}
	if !found {
		t.Fatalf("command did not run after automod delete: %v", responder.replies)
	}
}

func TestRemoveWarningBoundsReplies(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionManageMessages
	ctx := context.Background()

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$removewarning <@user-2> 1", target))
	if got := responder.replies[len(responder.replies)-1]; got != "❌ This user has no warnings." {
		t.Fatalf("reply = %q", got)
	}

	if err := b.store.AddWarning(ctx, "guild-1", "user-2", "spam"); err != nil {
		t.Fatalf("add warning: %v", err)
	}
	b.onMessageCreate(nil, message("mod-1", "$removewarning <@user-2> 5", target))
	if got := responder.replies[len(responder.replies)-1]; got != "❌ This user only has 1 warning(s)." {
		t.Fatalf("reply = %q", got)
	}

	b.onMessageCreate(nil, message("mod-1", "$removewarning <@user-2> 1", target))
	if got := responder.replies[len(responder.replies)-1]; got != `✅ Removed warning #1 from bob: "spam"` {
		t.Fatalf("reply = %q", got)
	}
}

func TestMuteGrantsRoleThenPersists(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionManageRoles
	ctx := context.Background()

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$mute <@user-2> 10m", target))

	if len(actions.granted) != 1 || actions.granted[0] != "user-2:role-muted" {
		t.Fatalf("granted = %v", actions.granted)
	}
	if _, ok, err := b.store.GetMute(ctx, "guild-1", "user-2"); err != nil || !ok {
		t.Fatalf("mute record ok=%v err=%v", ok, err)
	}
	if got := responder.replies[len(responder.replies)-1]; got != "✅ Muted bob for 10m" {
		t.Fatalf("reply = %q", got)
	}
}

func TestMuteRoleFailureSkipsPersist(t *testing.T) {
	b, actions, _ := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionManageRoles
	actions.failGrant = true

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$mute <@user-2> 10m", target))

	if _, ok, err := b.store.GetMute(context.Background(), "guild-1", "user-2"); err != nil || ok {
		t.Fatalf("mute persisted after failed grant: ok=%v err=%v", ok, err)
	}
}

func TestUnmuteIsIdempotent(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionManageRoles

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$unmute <@user-2>", target))

	if got := responder.replies[len(responder.replies)-1]; got != "✅ Unmuted bob" {
		t.Fatalf("reply = %q", got)
	}
}

func TestSweepExpiredMutes(t *testing.T) {
	b, actions, _ := newTestBot(t)
	ctx := context.Background()
	if err := b.store.SetMute(ctx, "guild-1", "user-2", time.Now().Add(-time.Minute).UnixMilli()); err != nil {
		t.Fatalf("set mute: %v", err)
	}
	if err := b.store.SetMute(ctx, "guild-1", "user-3", time.Now().Add(time.Hour).UnixMilli()); err != nil {
		t.Fatalf("set mute: %v", err)
	}

	b.sweepExpiredMutes(ctx)

	if len(actions.revoked) != 1 || actions.revoked[0] != "user-2:role-muted" {
		t.Fatalf("revoked = %v", actions.revoked)
	}
	if _, ok, _ := b.store.GetMute(ctx, "guild-1", "user-2"); ok {
		t.Fatal("expired mute record survived the sweep")
	}
	if _, ok, _ := b.store.GetMute(ctx, "guild-1", "user-3"); !ok {
		t.Fatal("live mute record was removed")
	}
}

func TestModerationActionsAreAudited(t *testing.T) {
	b, actions, responder := newTestBot(t)
	actions.perms["mod-1"] = discordgo.PermissionBanMembers | discordgo.PermissionManageServer

	target := &discordgo.User{ID: "user-2", Username: "bob"}
	b.onMessageCreate(nil, message("mod-1", "$ban <@user-2> raiding", target))

	logs, err := b.store.ListAuditLogs(context.Background(), "guild-1", 0)
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "ban" || logs[0].TargetID != "user-2" || logs[0].ActorID != "mod-1" {
		t.Fatalf("audit logs = %+v", logs)
	}

	b.onMessageCreate(nil, message("mod-1", "$modstats"))
	got := responder.replies[len(responder.replies)-1]
	if !strings.Contains(got, "1 moderation action(s)") || !strings.Contains(got, "ban: 1") {
		t.Fatalf("modstats reply = %q", got)
	}
}

func TestHelpSendsEmbed(t *testing.T) {
	b, _, responder := newTestBot(t)

	b.onMessageCreate(nil, message("user-1", "$help"))

	if len(responder.embeds) != 1 {
		t.Fatalf("embeds = %d", len(responder.embeds))
	}
	if responder.embeds[0].Color != 0x0099ff {
		t.Fatalf("embed color = %#x", responder.embeds[0].Color)
	}
}
