package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the connection to a single guild's database file
type DB struct {
	*sql.DB
	GuildID int64
	Path    string
}

// Open opens (creating if absent) the SQLite database for one guild and
// applies any pending migrations.
func Open(ctx context.Context, dataDir string, guildID int64) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, fmt.Sprintf("guild_%d.db", guildID))
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open guild database %s: %w", path, err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn between concurrent handlers for the same guild.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping guild database %s: %w", path, err)
	}

	db := &DB{DB: conn, GuildID: guildID, Path: path}

	if err := Migrate(db); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate guild database %s: %w", path, err)
	}

	return db, nil
}
