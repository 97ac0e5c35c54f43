package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guildbank/database"
	"guildbank/models"
)

// AttendanceRepository implements the service.AttendanceRepository interface
type AttendanceRepository struct {
	q queryable
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{q: db.DB}
}

// newAttendanceRepositoryWithTx creates a new attendance repository with a transaction
func newAttendanceRepositoryWithTx(tx queryable) *AttendanceRepository {
	return &AttendanceRepository{q: tx}
}

// GetByDate retrieves the record for a (user, date) pair, or nil
func (r *AttendanceRepository) GetByDate(ctx context.Context, userID int64, date string) (*models.AttendanceRecord, error) {
	query := `
		SELECT user_id, date, streak, created_at
		FROM attendance
		WHERE user_id = ? AND date = ?
	`

	var record models.AttendanceRecord
	err := r.q.QueryRowContext(ctx, query, userID, date).Scan(
		&record.UserID,
		&record.Date,
		&record.Streak,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for user %d on %s: %w", userID, date, err)
	}

	return &record, nil
}

// Insert adds a new attendance record. The (user_id, date) primary key
// rejects a second check-in for the same day.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO attendance (user_id, date, streak, created_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.q.ExecContext(ctx, query, record.UserID, record.Date, record.Streak, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert attendance for user %d on %s: %w", record.UserID, record.Date, err)
	}

	return nil
}

// DeleteByUser removes all attendance rows for a user
func (r *AttendanceRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM attendance WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete attendance for user %d: %w", userID, err)
	}

	return nil
}

// TopStreaks returns each user's most recent streak, highest first
func (r *AttendanceRepository) TopStreaks(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT t.user_id, COALESCE(a.display_name, ''), t.streak
		FROM attendance t
		JOIN (
			SELECT user_id, MAX(date) AS latest
			FROM attendance
			GROUP BY user_id
		) m ON m.user_id = t.user_id AND m.latest = t.date
		LEFT JOIN accounts a ON a.user_id = t.user_id
		ORDER BY t.streak DESC, t.user_id ASC
		LIMIT ?
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get streak leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := int64(0)
	for rows.Next() {
		rank++
		entry := models.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan streak leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate streak leaderboard: %w", err)
	}

	return entries, nil
}
