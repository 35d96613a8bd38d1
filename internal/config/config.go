package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults mirror the service's tuning when no environment is provided.
const (
	DefaultAddr             = ":8080"
	DefaultDownloadDir      = "downloads"
	DefaultCacheDir         = "audio_cache"
	DefaultCacheMaxAge      = 24 * time.Hour
	DefaultCacheMaxBytes    = 500 * 1024 * 1024
	DefaultEvictionInterval = 30 * time.Minute
	DefaultTaskTTL          = time.Hour
)

// Config is the process configuration, read once at startup.
type Config struct {
	Addr             string
	DownloadDir      string
	CacheDir         string
	CookieFile       string
	CacheMaxAge      time.Duration
	CacheMaxBytes    int64
	EvictionInterval time.Duration
	TaskTTL          time.Duration
	LogLevel         string
}

// FromEnv builds the configuration from environment variables, falling back
// to defaults for anything unset or malformed.
func FromEnv() Config {
	return Config{
		Addr:             envOrDefault("APP_ADDR", DefaultAddr),
		DownloadDir:      envOrDefault("DOWNLOAD_DIR", DefaultDownloadDir),
		CacheDir:         envOrDefault("CACHE_DIR", DefaultCacheDir),
		CookieFile:       os.Getenv("COOKIE_FILE"),
		CacheMaxAge:      envDurationOrDefault("CACHE_MAX_AGE", DefaultCacheMaxAge),
		CacheMaxBytes:    envInt64OrDefault("CACHE_MAX_BYTES", DefaultCacheMaxBytes),
		EvictionInterval: envDurationOrDefault("CACHE_EVICTION_INTERVAL", DefaultEvictionInterval),
		TaskTTL:          envDurationOrDefault("TASK_TTL", DefaultTaskTTL),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envInt64OrDefault(key string, fallback int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
