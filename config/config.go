package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Account settings
	StartingBalance int64

	// Wager settings
	MinBet int64
	MaxBet int64 // 0 means no upper limit

	// How long a settlement waits for a busy account before giving up
	LockWaitTimeout time.Duration

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

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		StartingBalance: 1000,
		MinBet:          1,
		MaxBet:          0,
		LockWaitTimeout: 3 * time.Second,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}
	if minBet := os.Getenv("MIN_BET"); minBet != "" {
		if parsed, err := strconv.ParseInt(minBet, 10, 64); err == nil {
			config.MinBet = parsed
		}
	}
	if maxBet := os.Getenv("MAX_BET"); maxBet != "" {
		if parsed, err := strconv.ParseInt(maxBet, 10, 64); err == nil {
			config.MaxBet = parsed
		}
	}
	if timeout := os.Getenv("LOCK_WAIT_TIMEOUT_MS"); timeout != "" {
		if parsed, err := strconv.ParseInt(timeout, 10, 64); err == nil {
			config.LockWaitTimeout = time.Duration(parsed) * time.Millisecond
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	if config.MinBet < 1 {
		return nil, fmt.Errorf("MIN_BET must be at least 1")
	}
	if config.MaxBet != 0 && config.MaxBet < config.MinBet {
		return nil, fmt.Errorf("MAX_BET must be 0 or >= MIN_BET")
	}

	return config, nil
}
