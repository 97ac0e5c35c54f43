package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentDate_UsesFixedTimezone(t *testing.T) {
	// 20:00 UTC is already past midnight in UTC+9
	now := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-02", currentDate(now))

	// 10:00 UTC is still the same day in UTC+9
	now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-01", currentDate(now))
}

func TestPreviousDate(t *testing.T) {
	assert.Equal(t, "2025-02-28", previousDate("2025-03-01"))
	assert.Equal(t, "2024-02-29", previousDate("2024-03-01")) // leap year
	assert.Equal(t, "2024-12-31", previousDate("2025-01-01"))
	assert.Equal(t, "", previousDate("not-a-date"))
}

func TestDayStart(t *testing.T) {
	// Day 2025-03-02 in UTC+9 begins at 15:00 UTC the day before
	now := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC), dayStart(now))

	// Instants on the same fixed-timezone day share a boundary
	later := time.Date(2025, 3, 2, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, dayStart(now), dayStart(later))
}
