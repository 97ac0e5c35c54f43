package repository

import (
	"context"
	"testing"
	"time"

	"guildbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_RecordFillsReferenceAndID(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	tx := &models.Transaction{
		UserID:       111,
		Type:         models.TransactionTypeAttendance,
		Amount:       100,
		BalanceAfter: 100,
		Description:  "check-in day 1",
	}

	require.NoError(t, repo.Record(ctx, tx))

	assert.NotEmpty(t, tx.Reference)
	assert.NotZero(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestTransactionRepository_GetByUser_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repo.Record(ctx, &models.Transaction{
			UserID:       111,
			Type:         models.TransactionTypeAttendance,
			Amount:       i * 100,
			BalanceAfter: i * 100,
		}))
	}

	rows, err := repo.GetByUser(ctx, 111, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(500), rows[0].Amount)
	assert.Equal(t, int64(400), rows[1].Amount)
	assert.Equal(t, int64(300), rows[2].Amount)
}

func TestTransactionRepository_CountByTypeSince(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	now := time.Now().UTC()
	boundary := now.Add(-1 * time.Hour)

	// Two gifts inside the window, one before it, one of another type
	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 111, Type: models.TransactionTypeGiftSent, Amount: -100, CreatedAt: now,
	}))
	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 111, Type: models.TransactionTypeGiftSent, Amount: -200, CreatedAt: now.Add(-30 * time.Minute),
	}))
	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 111, Type: models.TransactionTypeGiftSent, Amount: -300, CreatedAt: now.Add(-2 * time.Hour),
	}))
	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 111, Type: models.TransactionTypeAttendance, Amount: 100, CreatedAt: now,
	}))

	count, err := repo.CountByTypeSince(ctx, 111, models.TransactionTypeGiftSent, boundary)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Another user's rows are not counted
	count, err = repo.CountByTypeSince(ctx, 222, models.TransactionTypeGiftSent, boundary)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTransactionRepository_DeleteByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 111, Type: models.TransactionTypeAttendance, Amount: 100,
	}))
	require.NoError(t, repo.Record(ctx, &models.Transaction{
		UserID: 222, Type: models.TransactionTypeAttendance, Amount: 100,
	}))

	require.NoError(t, repo.DeleteByUser(ctx, 111))

	rows, err := repo.GetByUser(ctx, 111, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.GetByUser(ctx, 222, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
