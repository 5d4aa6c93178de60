package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoWarnings is returned when a removal targets a user with an empty list.
	ErrNoWarnings = errors.New("user has no warnings")
	// ErrWarningOutOfRange is returned when the 1-based position exceeds the list.
	ErrWarningOutOfRange = errors.New("warning position out of range")
)

func (s *Store) AddWarning(ctx context.Context, guildID, userID, reason string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO warnings (guild_id, user_id, reason, created_at)
		VALUES (?, ?, ?, ?)
	`, guildID, userID, reason, time.Now().UnixMilli())
	return err
}

// ListWarnings returns a user's warnings in insertion order. Position n in the
// returned slice is warning number n+1.
func (s *Store) ListWarnings(ctx context.Context, guildID, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reason FROM warnings
		WHERE guild_id = ? AND user_id = ?
		ORDER BY id
	`, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reasons []string
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, err
		}
		reasons = append(reasons, reason)
	}
	return reasons, rows.Err()
}

// RemoveWarning deletes the warning at the given 1-based position and returns
// its reason together with the remaining count. Later warnings renumber down
// by one implicitly since positions are derived from insertion order.
func (s *Store) RemoveWarning(ctx context.Context, guildID, userID string, position int) (string, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, reason FROM warnings
		WHERE guild_id = ? AND user_id = ?
		ORDER BY id
	`, guildID, userID)
	if err != nil {
		return "", 0, err
	}

	type row struct {
		id     int64
		reason string
	}
	var entries []row
	for rows.Next() {
		var entry row
		if scanErr := rows.Scan(&entry.id, &entry.reason); scanErr != nil {
			rows.Close()
			err = scanErr
			return "", 0, err
		}
		entries = append(entries, entry)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return "", 0, err
	}

	if len(entries) == 0 {
		err = ErrNoWarnings
		return "", 0, err
	}
	if position < 1 || position > len(entries) {
		err = ErrWarningOutOfRange
		return "", len(entries), err
	}

	target := entries[position-1]
	if _, err = tx.ExecContext(ctx, `DELETE FROM warnings WHERE id = ?`, target.id); err != nil {
		return "", 0, err
	}
	if err = tx.Commit(); err != nil {
		return "", 0, err
	}
	return target.reason, len(entries) - 1, nil
}

func (s *Store) ClearWarnings(ctx context.Context, guildID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM warnings WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)
	return err
}
