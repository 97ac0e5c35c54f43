package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guildbank/database"
	"guildbank/models"
)

// EnhancementRepository implements the service.EnhancementRepository interface
type EnhancementRepository struct {
	q queryable
}

// NewEnhancementRepository creates a new enhancement repository
func NewEnhancementRepository(db *database.DB) *EnhancementRepository {
	return &EnhancementRepository{q: db.DB}
}

// newEnhancementRepositoryWithTx creates a new enhancement repository with a transaction
func newEnhancementRepositoryWithTx(tx queryable) *EnhancementRepository {
	return &EnhancementRepository{q: tx}
}

// Get retrieves a user's item by name, or nil if never attempted
func (r *EnhancementRepository) Get(ctx context.Context, userID int64, name string) (*models.EnhancementItem, error) {
	query := `
		SELECT user_id, name, level, success_count, fail_count, consecutive_fails, updated_at
		FROM enhancement_items
		WHERE user_id = ? AND name = ?
	`

	var item models.EnhancementItem
	err := r.q.QueryRowContext(ctx, query, userID, name).Scan(
		&item.UserID,
		&item.Name,
		&item.Level,
		&item.SuccessCount,
		&item.FailCount,
		&item.ConsecutiveFails,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enhancement item %q for user %d: %w", name, userID, err)
	}

	return &item, nil
}

// Upsert writes the full item state, inserting or replacing
func (r *EnhancementRepository) Upsert(ctx context.Context, item *models.EnhancementItem) error {
	item.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO enhancement_items (user_id, name, level, success_count, fail_count, consecutive_fails, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET
			level = excluded.level,
			success_count = excluded.success_count,
			fail_count = excluded.fail_count,
			consecutive_fails = excluded.consecutive_fails,
			updated_at = excluded.updated_at
	`

	_, err := r.q.ExecContext(ctx, query,
		item.UserID,
		item.Name,
		item.Level,
		item.SuccessCount,
		item.FailCount,
		item.ConsecutiveFails,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert enhancement item %q for user %d: %w", item.Name, item.UserID, err)
	}

	return nil
}

// DeleteByUser removes all items for a user
func (r *EnhancementRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM enhancement_items WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete enhancement items for user %d: %w", userID, err)
	}

	return nil
}

// ResetAll wipes every item in the guild
func (r *EnhancementRepository) ResetAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM enhancement_items`); err != nil {
		return fmt.Errorf("failed to reset enhancement items: %w", err)
	}

	return nil
}
