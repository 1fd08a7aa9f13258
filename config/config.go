package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type StorageConfig struct {
	Backend       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type Config struct {
	HTTPAddr           string
	Storage            StorageConfig
	SubmitURL          string
	DismissDelay       time.Duration
	RateLimitPerMinute int
	LogLevel           string
	LogFormat          string
}

// Load reads the configuration from the environment, falling back to values
// suitable for local use.
func Load() Config {
	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Storage: StorageConfig{
			Backend:       getEnv("STORE_BACKEND", BackendSQLite),
			SQLitePath:    getEnv("SQLITE_PATH", "loan-calculator.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		SubmitURL:          getEnv("SUBMIT_URL", "https://jsonplaceholder.typicode.com/posts"),
		DismissDelay:       getEnvDuration("SUBMIT_DISMISS_DELAY", 2*time.Second),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite backend", ErrInvalidConfig)
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisAddr == "" {
		return fmt.Errorf("%w: REDIS_ADDR is required for the redis backend", ErrInvalidConfig)
	}
	if c.SubmitURL == "" {
		return fmt.Errorf("%w: SUBMIT_URL is empty", ErrInvalidConfig)
	}
	if c.DismissDelay <= 0 {
		return fmt.Errorf("%w: SUBMIT_DISMISS_DELAY must be positive", ErrInvalidConfig)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_PER_MINUTE must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
