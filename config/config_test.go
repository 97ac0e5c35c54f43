package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("STARTING_BALANCE", "")
	t.Setenv("GIFT_COOLDOWN_SECONDS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, int64(0), cfg.StartingBalance)
	assert.Equal(t, 60*time.Second, cfg.GiftCooldown)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/guildbank")
	t.Setenv("STARTING_BALANCE", "5000")
	t.Setenv("GIFT_COOLDOWN_SECONDS", "120")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/guildbank", cfg.DataDir)
	assert.Equal(t, int64(5000), cfg.StartingBalance)
	assert.Equal(t, 120*time.Second, cfg.GiftCooldown)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("STARTING_BALANCE", "lots")
	_, err := load()
	assert.Error(t, err)

	t.Setenv("STARTING_BALANCE", "")
	t.Setenv("GIFT_COOLDOWN_SECONDS", "-5")
	_, err = load()
	assert.Error(t, err)
}
