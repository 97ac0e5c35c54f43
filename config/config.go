package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Storage configuration
	DataDir string // Directory holding one SQLite file per guild

	// Economy configuration
	StartingBalance int64 // Cash granted on explicit registration

	// Gift configuration
	GiftCooldown time.Duration // Minimum wait between gifts from the same sender

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, with .env support
func load() (*Config, error) {
	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	config := &Config{
		DataDir:         os.Getenv("DATA_DIR"),
		StartingBalance: 0,
		GiftCooldown:    60 * time.Second,
		LogLevel:        os.Getenv("LOG_LEVEL"),
		Environment:     os.Getenv("ENVIRONMENT"),
	}

	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := strconv.ParseInt(balance, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE %q: %w", balance, err)
		}
		config.StartingBalance = parsed
	}

	if cooldown := os.Getenv("GIFT_COOLDOWN_SECONDS"); cooldown != "" {
		seconds, err := strconv.Atoi(cooldown)
		if err != nil || seconds < 0 {
			return nil, fmt.Errorf("invalid GIFT_COOLDOWN_SECONDS %q", cooldown)
		}
		config.GiftCooldown = time.Duration(seconds) * time.Second
	}

	return config, nil
}
