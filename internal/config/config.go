package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Admission backends
const (
	AdmissionBackendRedis    = "redis"
	AdmissionBackendPostgres = "postgres"
	AdmissionBackendMemory   = "memory"
)

// Config holds the whole application configuration.
// It is populated from environment variables; pool settings live in
// LoadDatabaseConfig.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Feed      FeedConfig
	Admission AdmissionConfig
	Worker    WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// =====================================================
// FEED CONFIGURATION
// =====================================================

type FeedConfig struct {
	DefaultLimit int // page size when the caller omits limit
	MaxLimit     int // upper bound accepted for limit
}

// =====================================================
// ADMISSION CONTROL CONFIGURATION
// =====================================================

// AdmissionConfig tunes the per-identity write limiter.
type AdmissionConfig struct {
	Backend string        // redis, postgres, memory
	Window  time.Duration // length of the sliding window
	Quota   int           // writes allowed inside one window
	Prefix  string        // redis key prefix
}

type WorkerConfig struct {
	Concurrency   int
	PruneSchedule string // cron spec for the admission event pruning job
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	window, err := getEnvDuration("ADMISSION_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Microposts API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 15),
		},
		Feed: FeedConfig{
			DefaultLimit: getEnvInt("FEED_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvInt("FEED_MAX_LIMIT", 100),
		},
		Admission: AdmissionConfig{
			Backend: getEnv("ADMISSION_BACKEND", AdmissionBackendRedis),
			Window:  window,
			Quota:   getEnvInt("ADMISSION_QUOTA", 3),
			Prefix:  getEnv("ADMISSION_KEY_PREFIX", "ratelimit:posts:"),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvInt("WORKER_CONCURRENCY", 5),
			PruneSchedule: getEnv("WORKER_PRUNE_SCHEDULE", "*/5 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if getEnv("DB_PASSWORD", "") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Feed.MaxLimit < 1 {
		return fmt.Errorf("FEED_MAX_LIMIT must be positive")
	}
	if c.Feed.DefaultLimit < 1 || c.Feed.DefaultLimit > c.Feed.MaxLimit {
		return fmt.Errorf("FEED_DEFAULT_LIMIT must be between 1 and %d", c.Feed.MaxLimit)
	}

	switch c.Admission.Backend {
	case AdmissionBackendRedis, AdmissionBackendPostgres, AdmissionBackendMemory:
	default:
		return fmt.Errorf("unknown ADMISSION_BACKEND %q", c.Admission.Backend)
	}
	if c.Admission.Quota < 1 {
		return fmt.Errorf("ADMISSION_QUOTA must be positive")
	}
	if c.Admission.Window <= 0 {
		return fmt.Errorf("ADMISSION_WINDOW must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
