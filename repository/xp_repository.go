package repository

import (
	"context"
	"database/sql"
	"fmt"

	"guildbank/database"
	"guildbank/models"
)

// XPRepository implements the service.XPRepository interface
type XPRepository struct {
	q queryable
}

// NewXPRepository creates a new XP repository
func NewXPRepository(db *database.DB) *XPRepository {
	return &XPRepository{q: db.DB}
}

// newXPRepositoryWithTx creates a new XP repository with a transaction
func newXPRepositoryWithTx(tx queryable) *XPRepository {
	return &XPRepository{q: tx}
}

// Get retrieves an XP record, or nil if none exists
func (r *XPRepository) Get(ctx context.Context, userID int64) (*models.XPRecord, error) {
	query := `
		SELECT user_id, xp, level
		FROM xp_records
		WHERE user_id = ?
	`

	var record models.XPRecord
	err := r.q.QueryRowContext(ctx, query, userID).Scan(&record.UserID, &record.XP, &record.Level)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get xp record for user %d: %w", userID, err)
	}

	return &record, nil
}

// Upsert writes the full XP record, inserting or replacing
func (r *XPRepository) Upsert(ctx context.Context, record *models.XPRecord) error {
	query := `
		INSERT INTO xp_records (user_id, xp, level)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level
	`

	if _, err := r.q.ExecContext(ctx, query, record.UserID, record.XP, record.Level); err != nil {
		return fmt.Errorf("failed to upsert xp record for user %d: %w", record.UserID, err)
	}

	return nil
}

// Delete removes the XP record
func (r *XPRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM xp_records WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete xp record for user %d: %w", userID, err)
	}

	return nil
}

// TopByXP returns the leaderboard by accumulated XP
func (r *XPRepository) TopByXP(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT x.user_id, COALESCE(a.display_name, ''), x.xp
		FROM xp_records x
		LEFT JOIN accounts a ON a.user_id = x.user_id
		ORDER BY x.xp DESC, x.user_id ASC
		LIMIT ?
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get xp leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := int64(0)
	for rows.Next() {
		rank++
		entry := models.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan xp leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate xp leaderboard: %w", err)
	}

	return entries, nil
}
