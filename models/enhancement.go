package models

import (
	"time"
)

// EnhancementItem tracks a user's upgrade progress for one named item.
// Level moves up or down per attempt; counters only ever grow except for
// the consecutive-failure counter, which resets on success.
type EnhancementItem struct {
	UserID           int64     `db:"user_id"`
	Name             string    `db:"name"`
	Level            int64     `db:"level"`
	SuccessCount     int64     `db:"success_count"`
	FailCount        int64     `db:"fail_count"`
	ConsecutiveFails int64     `db:"consecutive_fails"`
	UpdatedAt        time.Time `db:"updated_at"`
}
