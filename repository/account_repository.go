package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guildbank/database"
	"guildbank/models"
)

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.DB}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByUserID retrieves an account, or nil if the user is unregistered
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	query := `
		SELECT user_id, display_name, cash, created_at, updated_at
		FROM accounts
		WHERE user_id = ?
	`

	var account models.Account
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&account.UserID,
		&account.DisplayName,
		&account.Cash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for user %d: %w", userID, err)
	}

	return &account, nil
}

// Create creates a new account with the given starting cash
func (r *AccountRepository) Create(ctx context.Context, userID int64, displayName string, startingCash int64) (*models.Account, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (user_id, display_name, cash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.q.ExecContext(ctx, query, userID, displayName, startingCash, now, now); err != nil {
		return nil, fmt.Errorf("failed to create account for user %d: %w", userID, err)
	}

	return &models.Account{
		UserID:      userID,
		DisplayName: displayName,
		Cash:        startingCash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateDisplayName refreshes the cached display name
func (r *AccountRepository) UpdateDisplayName(ctx context.Context, userID int64, displayName string) error {
	query := `
		UPDATE accounts
		SET display_name = ?, updated_at = ?
		WHERE user_id = ?
	`

	result, err := r.q.ExecContext(ctx, query, displayName, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update display name for user %d: %w", userID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check display name update for user %d: %w", userID, err)
	}
	if rows == 0 {
		return fmt.Errorf("account for user %d not found", userID)
	}

	return nil
}

// AddCash applies a signed delta to the cash balance as a single statement,
// creating the row if absent, and returns the new balance. No floor at
// zero: overdraft is the caller's responsibility to prevent.
func (r *AccountRepository) AddCash(ctx context.Context, userID int64, delta int64) (int64, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (user_id, display_name, cash, created_at, updated_at)
		VALUES (?, '', ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			cash = cash + excluded.cash,
			updated_at = excluded.updated_at
		RETURNING cash
	`

	var newBalance int64
	err := r.q.QueryRowContext(ctx, query, userID, delta, now, now).Scan(&newBalance)
	if err != nil {
		return 0, fmt.Errorf("failed to add cash for user %d: %w", userID, err)
	}

	return newBalance, nil
}

// Delete removes the account row
func (r *AccountRepository) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM accounts WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete account for user %d: %w", userID, err)
	}

	return nil
}

// TopByCash returns the leaderboard by cash balance. Ties are broken by
// earliest account creation, then lowest user id, so ranks are stable.
func (r *AccountRepository) TopByCash(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT user_id, display_name, cash
		FROM accounts
		ORDER BY cash DESC, created_at ASC, user_id ASC
		LIMIT ?
	`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := int64(0)
	for rows.Next() {
		rank++
		entry := models.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&entry.UserID, &entry.DisplayName, &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return entries, nil
}

// Rank returns the 1-based position of a user by cash, descending, with
// the same stable tie-break as TopByCash. The second return is false if
// the user has no account.
func (r *AccountRepository) Rank(ctx context.Context, userID int64) (int64, bool, error) {
	query := `
		SELECT COUNT(*) + 1
		FROM accounts o, accounts me
		WHERE me.user_id = ?
		  AND (o.cash > me.cash
		       OR (o.cash = me.cash AND o.created_at < me.created_at)
		       OR (o.cash = me.cash AND o.created_at = me.created_at AND o.user_id < me.user_id))
	`

	var rank int64
	err := r.q.QueryRowContext(ctx, query, userID).Scan(&rank)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to compute rank for user %d: %w", userID, err)
	}

	// The cross join yields a row even for unknown users; distinguish by
	// checking existence.
	exists, err := r.exists(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, nil
	}

	return rank, true, nil
}

func (r *AccountRepository) exists(ctx context.Context, userID int64) (bool, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence for user %d: %w", userID, err)
	}
	return n > 0, nil
}
