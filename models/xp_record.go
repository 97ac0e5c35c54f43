package models

// XPRecord holds a user's accumulated XP and the level derived from it.
// Level is cached in storage but always recomputed on every XP change.
type XPRecord struct {
	UserID int64 `db:"user_id"`
	XP     int64 `db:"xp"`
	Level  int64 `db:"level"`
}
