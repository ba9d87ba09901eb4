package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// RPC settings
	RPCUrl     string
	RPCTimeout time.Duration

	// Pool fetch settings
	MaxRetries      int
	RetryDelay      time.Duration
	BatchSize       int
	FetchTimeout    time.Duration
	EnableCaching   bool
	CacheTTL        time.Duration
	CacheSweepEvery time.Duration

	// API server settings
	APIAddr string
	APIKey  string
	DevMode bool
}

func Load() *Config {
	return &Config{
		// RPC
		RPCUrl:     getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
		RPCTimeout: getDurationEnv("RPC_TIMEOUT", 30*time.Second),

		// Pool fetch
		MaxRetries:      getIntEnv("MAX_RETRIES", 3),
		RetryDelay:      getDurationEnv("RETRY_DELAY", 1000*time.Millisecond),
		BatchSize:       getIntEnv("BATCH_SIZE", 10),
		FetchTimeout:    getDurationEnv("FETCH_TIMEOUT", 30*time.Second),
		EnableCaching:   getBoolEnv("ENABLE_CACHING", true),
		CacheTTL:        getDurationEnv("CACHE_TTL", 300*time.Second),
		CacheSweepEvery: getDurationEnv("CACHE_SWEEP_INTERVAL", 60*time.Second),

		// API
		APIAddr: getEnv("API_ADDR", ":8090"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),
	}
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.RPCUrl == "" {
		return fmt.Errorf("SOLANA_RPC_URL must not be empty")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be >= 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("RETRY_DELAY must not be negative")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("BATCH_SIZE must be >= 1, got %d", c.BatchSize)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.EnableCaching && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
