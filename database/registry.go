package database

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Registry maps guild ids to their open database handles. Handles are
// opened lazily on first use and kept for the life of the process; guild
// counts are small enough that eviction is not worth the complexity.
type Registry struct {
	mu      sync.Mutex
	dataDir string
	guilds  map[int64]*DB
}

// NewRegistry creates a registry rooted at dataDir
func NewRegistry(dataDir string) *Registry {
	return &Registry{
		dataDir: dataDir,
		guilds:  make(map[int64]*DB),
	}
}

// Get returns the database for a guild, opening and migrating it if needed.
// A failure to open affects only that guild; other guilds keep working.
func (r *Registry) Get(ctx context.Context, guildID int64) (*DB, error) {
	if guildID == 0 {
		return nil, fmt.Errorf("guild id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.guilds[guildID]; ok {
		return db, nil
	}

	db, err := Open(ctx, r.dataDir, guildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guildID": guildID,
			"error":   err,
		}).Error("Failed to open guild database")
		return nil, err
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"path":    db.Path,
	}).Info("Opened guild database")

	r.guilds[guildID] = db
	return db, nil
}

// Close closes every open guild database
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for guildID, db := range r.guilds {
		if err := db.Close(); err != nil {
			log.WithFields(log.Fields{
				"guildID": guildID,
				"error":   err,
			}).Warn("Error closing guild database")
		}
		delete(r.guilds, guildID)
	}
}
