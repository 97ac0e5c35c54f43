package database

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations to a guild database.
// It is safe to call repeatedly; an up-to-date schema is a no-op.
func Migrate(db *DB) error {
	m, err := getMigrate(db.Path)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.WithFields(log.Fields{
		"guildID": db.GuildID,
		"version": version,
	}).Debug("Guild database schema up to date")

	return nil
}

// MigrateUp runs all pending migrations on every guild database in dataDir
func MigrateUp(dataDir string) error {
	return forEachGuildDatabase(dataDir, func(path string) error {
		m, err := getMigrate(path)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance for %s: %w", path, err)
		}
		defer m.Close()

		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to run migrations on %s: %w", path, err)
		}

		version, _, _ := m.Version()
		log.WithFields(log.Fields{"path": path, "version": version}).Info("Migrated guild database")
		return nil
	})
}

// MigrateDown rolls back the specified number of migrations on every guild database
func MigrateDown(dataDir, stepsStr string) error {
	steps, err := strconv.Atoi(stepsStr)
	if err != nil {
		return fmt.Errorf("invalid steps value: %w", err)
	}

	return forEachGuildDatabase(dataDir, func(path string) error {
		m, err := getMigrate(path)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance for %s: %w", path, err)
		}
		defer m.Close()

		if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to rollback migrations on %s: %w", path, err)
		}

		version, _, _ := m.Version()
		log.WithFields(log.Fields{"path": path, "version": version}).Info("Rolled back guild database")
		return nil
	})
}

// MigrateStatus reports the current migration version of every guild database
func MigrateStatus(dataDir string) error {
	return forEachGuildDatabase(dataDir, func(path string) error {
		m, err := getMigrate(path)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance for %s: %w", path, err)
		}
		defer m.Close()

		version, dirty, err := m.Version()
		if err == migrate.ErrNilVersion {
			log.WithField("path", path).Info("No migrations applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get migration version for %s: %w", path, err)
		}

		status := "clean"
		if dirty {
			status = "dirty"
		}
		log.WithFields(log.Fields{"path": path, "version": version, "status": status}).Info("Migration status")
		return nil
	})
}

// forEachGuildDatabase applies fn to every guild_*.db file in dataDir
func forEachGuildDatabase(dataDir string, fn func(path string) error) error {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory %s: %w", dataDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "guild_") || !strings.HasSuffix(name, ".db") {
			continue
		}
		if err := fn(filepath.Join(dataDir, name)); err != nil {
			return err
		}
	}

	return nil
}

// getMigrate creates a migrate instance with its own short-lived connection,
// so closing it never touches the live guild handle.
func getMigrate(path string) (*migrate.Migrate, error) {
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	driver, err := sqlite3.WithInstance(conn, &sqlite3.Config{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create sqlite3 driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}
