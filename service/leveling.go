package service

import (
	"math"
)

// Level computes the level for an XP total: floor(sqrt(xp/100)) + 1,
// never below 1. Payout and tier displays depend on the exact integer
// boundaries, so this formula must not be approximated.
func Level(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	return int64(math.Sqrt(float64(xp)/100)) + 1
}

// XPForLevel returns the minimum XP total that reaches a level:
// (level-1)^2 * 100, and 0 for level 1 and below. Exact inverse of Level
// at integer boundaries.
func XPForLevel(level int64) int64 {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}
