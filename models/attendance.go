package models

import (
	"time"
)

// AttendanceRecord is one check-in: a (user, calendar day) pair with the
// streak count reached on that day. Days are calendar dates in the fixed
// organizational timezone, formatted YYYY-MM-DD.
type AttendanceRecord struct {
	UserID    int64     `db:"user_id"`
	Date      string    `db:"date"`
	Streak    int64     `db:"streak"`
	CreatedAt time.Time `db:"created_at"`
}
