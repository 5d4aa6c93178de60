package audit

import (
	"context"
	"time"

	"warden-moderation/internal/storage"

	"go.uber.org/zap"
)

// Recorder persists moderation actions and mirrors them to the structured
// log. Persistence failures never surface to handlers; the action itself
// already happened.
type Recorder struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewRecorder(store *storage.Store, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, guildID, actorID, targetID, action, details string) {
	entry := storage.AuditLog{
		GuildID:   guildID,
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UnixMilli(),
	}
	if r.store != nil {
		if err := r.store.AddAuditLog(ctx, entry); err != nil {
			r.logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}
	r.logger.Info("moderation action",
		zap.String("guild_id", guildID),
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
		zap.String("action", action),
		zap.String("details", details))
}
