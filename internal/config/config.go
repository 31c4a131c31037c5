package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds everything main needs to wire the application.
type Config struct {
	HTTPAddr        string
	Env             string
	LogLevel        string
	LogFormat       string
	StorageDriver   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKeyPrefix  string
	SeedSampleData  bool
	Location        *time.Location
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// IsProduction reports GO_ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr:       get("HTTP_ADDR", ":9091"),
		Env:            get("GO_ENV", "development"),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFormat:      get("LOG_FORMAT", "json"),
		StorageDriver:  strings.ToLower(get("STORAGE_DRIVER", StorageMemory)),
		RedisAddr:      get("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		RedisKeyPrefix: get("REDIS_KEY_PREFIX", "frispy:"),
		AllowedOrigins: splitAndTrim(get("CORS_ALLOWED_ORIGINS", "")),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver)
	}

	db, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil || db < 0 {
		return Config{}, fmt.Errorf("REDIS_DB: invalid value %q", getenv("REDIS_DB"))
	}
	cfg.RedisDB = db

	seed, err := strconv.ParseBool(get("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("SEED_SAMPLE_DATA: %w", err)
	}
	cfg.SeedSampleData = seed

	loc, err := time.LoadLocation(get("TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	return cfg, nil
}

func splitAndTrim(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
