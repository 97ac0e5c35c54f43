package models

import (
	"time"
)

// Account represents one user's ledger entry within a guild
type Account struct {
	UserID      int64     `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Cash        int64     `db:"cash"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
