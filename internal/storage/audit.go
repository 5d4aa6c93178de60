package storage

import (
	"context"
)

// AuditLog is one recorded moderation action. Timestamps are epoch
// milliseconds, matching the rest of the store.
type AuditLog struct {
	GuildID   string
	ActorID   string
	TargetID  string
	Action    string
	Details   string
	CreatedAt int64
}

func (s *Store) AddAuditLog(ctx context.Context, entry AuditLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_logs (guild_id, actor_id, target_id, action, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.GuildID, entry.ActorID, entry.TargetID, entry.Action, entry.Details, entry.CreatedAt)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, guildID string, since int64) ([]AuditLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guild_id, actor_id, target_id, action, details, created_at
		 FROM audit_logs WHERE guild_id = ? AND created_at >= ? ORDER BY id`,
		guildID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditLog
	for rows.Next() {
		var entry AuditLog
		if err := rows.Scan(&entry.GuildID, &entry.ActorID, &entry.TargetID,
			&entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
