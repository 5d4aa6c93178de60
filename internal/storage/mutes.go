package storage

import (
	"context"
	"database/sql"
	"errors"
)

type Mute struct {
	GuildID   string
	UserID    string
	ExpiresAt int64
}

// SetMute records an absolute expiry instant in epoch milliseconds,
// overwriting any previous record for the same user.
func (s *Store) SetMute(ctx context.Context, guildID, userID string, expiresAt int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mutes (guild_id, user_id, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(guild_id, user_id) DO UPDATE SET expires_at = excluded.expires_at
	`, guildID, userID, expiresAt)
	return err
}

// GetMute returns the stored expiry for a user. Presence of a record does not
// imply the user is still restricted; callers compare against the clock.
func (s *Store) GetMute(ctx context.Context, guildID, userID string) (int64, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT expires_at FROM mutes WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)

	var expiresAt int64
	if err := row.Scan(&expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return expiresAt, true, nil
}

// DeleteMute is a no-op when no record exists.
func (s *Store) DeleteMute(ctx context.Context, guildID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM mutes WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)
	return err
}

func (s *Store) ListExpiredMutes(ctx context.Context, now int64) ([]Mute, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT guild_id, user_id, expires_at FROM mutes WHERE expires_at <= ?
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mutes []Mute
	for rows.Next() {
		var mute Mute
		if err := rows.Scan(&mute.GuildID, &mute.UserID, &mute.ExpiresAt); err != nil {
			return nil, err
		}
		mutes = append(mutes, mute)
	}
	return mutes, rows.Err()
}
