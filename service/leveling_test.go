package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_Boundaries(t *testing.T) {
	tests := []struct {
		xp       int64
		expected int64
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{10000, 11},
		{-50, 1}, // negative totals clamp to zero
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Level(tt.xp), "Level(%d)", tt.xp)
	}
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, int64(0), XPForLevel(0))
	assert.Equal(t, int64(0), XPForLevel(1))
	assert.Equal(t, int64(100), XPForLevel(2))
	assert.Equal(t, int64(400), XPForLevel(3))
	assert.Equal(t, int64(8100), XPForLevel(10))
}

func TestXPForLevel_IsInverseOfLevel(t *testing.T) {
	// The minimum XP for a level must land exactly on that level, and one
	// point less must land on the level below
	for level := int64(2); level <= 50; level++ {
		threshold := XPForLevel(level)
		assert.Equal(t, level, Level(threshold), "Level(XPForLevel(%d))", level)
		assert.Equal(t, level-1, Level(threshold-1), "Level(XPForLevel(%d)-1)", level)
	}
}
