package repository

import (
	"context"
	"fmt"
	"time"

	"guildbank/database"
	"guildbank/models"

	"github.com/google/uuid"
)

// TransactionRepository implements the service.TransactionRepository
// interface over the append-only audit log
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.DB}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Record appends an audit row. Rows are never updated afterwards.
func (r *TransactionRepository) Record(ctx context.Context, transaction *models.Transaction) error {
	if transaction.Reference == "" {
		transaction.Reference = uuid.NewString()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions (reference, user_id, type, amount, balance_after, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.q.ExecContext(ctx, query,
		transaction.Reference,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.BalanceAfter,
		transaction.Description,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", transaction.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		transaction.ID = id
	}

	return nil
}

// GetByUser returns recent transactions for a user, newest first
func (r *TransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, reference, user_id, type, amount, balance_after, description, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.q.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID,
			&t.Reference,
			&t.UserID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// CountByTypeSince counts a user's transactions of one type recorded at or
// after the given instant. Daily limits are computed from this, not from a
// separate counter table.
func (r *TransactionRepository) CountByTypeSince(ctx context.Context, userID int64, transactionType models.TransactionType, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM transactions
		WHERE user_id = ? AND type = ? AND created_at >= ?
	`

	var count int64
	err := r.q.QueryRowContext(ctx, query, userID, transactionType, since.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s transactions for user %d: %w", transactionType, userID, err)
	}

	return count, nil
}

// DeleteByUser removes all audit rows for a user as part of the
// unregister cascade
func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM transactions WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete transactions for user %d: %w", userID, err)
	}

	return nil
}
