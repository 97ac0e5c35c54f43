package repository

import (
	"context"
	"testing"

	"guildbank/database"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a real migrated guild database in a temp directory.
// The file is removed with the test's temp dir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), t.TempDir(), 1)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}
