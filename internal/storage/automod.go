package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type AutomodSettings struct {
	GuildID  string
	Enabled  bool
	AntiLink bool
	AntiCaps bool
	AntiSpam bool
}

// GetAutomodSettings returns the all-off defaults when no row exists.
func (s *Store) GetAutomodSettings(ctx context.Context, guildID string) (AutomodSettings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT enabled, anti_link, anti_caps, anti_spam
		FROM automod_settings WHERE guild_id = ?
	`, guildID)

	settings := AutomodSettings{GuildID: guildID}
	var enabled, antiLink, antiCaps, antiSpam int
	err := row.Scan(&enabled, &antiLink, &antiCaps, &antiSpam)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings, nil
		}
		return AutomodSettings{}, err
	}
	settings.Enabled = enabled == 1
	settings.AntiLink = antiLink == 1
	settings.AntiCaps = antiCaps == 1
	settings.AntiSpam = antiSpam == 1
	return settings, nil
}

func (s *Store) UpsertAutomodSettings(ctx context.Context, settings AutomodSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO automod_settings (guild_id, enabled, anti_link, anti_caps, anti_spam)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			enabled = excluded.enabled,
			anti_link = excluded.anti_link,
			anti_caps = excluded.anti_caps,
			anti_spam = excluded.anti_spam
	`,
		settings.GuildID,
		boolToInt(settings.Enabled),
		boolToInt(settings.AntiLink),
		boolToInt(settings.AntiCaps),
		boolToInt(settings.AntiSpam),
	)
	return err
}

func (s *Store) AddBannedWord(ctx context.Context, guildID, word string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO banned_words (guild_id, word) VALUES (?, ?)
	`, guildID, strings.ToLower(word))
	return err
}

func (s *Store) RemoveBannedWord(ctx context.Context, guildID, word string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM banned_words WHERE guild_id = ? AND word = ?
	`, guildID, strings.ToLower(word))
	return err
}

func (s *Store) ListBannedWords(ctx context.Context, guildID string) ([]string, error) {
	return s.listIDs(ctx, `SELECT word FROM banned_words WHERE guild_id = ? ORDER BY word`, guildID)
}

func (s *Store) AddIgnoredChannel(ctx context.Context, guildID, channelID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO ignored_channels (guild_id, channel_id) VALUES (?, ?)
	`, guildID, channelID)
	return err
}

func (s *Store) RemoveIgnoredChannel(ctx context.Context, guildID, channelID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM ignored_channels WHERE guild_id = ? AND channel_id = ?
	`, guildID, channelID)
	return err
}

func (s *Store) ListIgnoredChannels(ctx context.Context, guildID string) ([]string, error) {
	return s.listIDs(ctx, `SELECT channel_id FROM ignored_channels WHERE guild_id = ? ORDER BY channel_id`, guildID)
}

func (s *Store) AddWhitelistUser(ctx context.Context, guildID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO whitelist_users (guild_id, user_id) VALUES (?, ?)
	`, guildID, userID)
	return err
}

func (s *Store) RemoveWhitelistUser(ctx context.Context, guildID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM whitelist_users WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)
	return err
}

func (s *Store) ListWhitelistUsers(ctx context.Context, guildID string) ([]string, error) {
	return s.listIDs(ctx, `SELECT user_id FROM whitelist_users WHERE guild_id = ? ORDER BY user_id`, guildID)
}

func (s *Store) AddWhitelistRole(ctx context.Context, guildID, roleID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO whitelist_roles (guild_id, role_id) VALUES (?, ?)
	`, guildID, roleID)
	return err
}

func (s *Store) RemoveWhitelistRole(ctx context.Context, guildID, roleID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM whitelist_roles WHERE guild_id = ? AND role_id = ?
	`, guildID, roleID)
	return err
}

func (s *Store) ListWhitelistRoles(ctx context.Context, guildID string) ([]string, error) {
	return s.listIDs(ctx, `SELECT role_id FROM whitelist_roles WHERE guild_id = ? ORDER BY role_id`, guildID)
}

func (s *Store) listIDs(ctx context.Context, query, guildID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
