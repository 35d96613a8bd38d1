package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADDR", "DOWNLOAD_DIR", "CACHE_DIR", "COOKIE_FILE",
		"CACHE_MAX_AGE", "CACHE_MAX_BYTES", "CACHE_EVICTION_INTERVAL",
		"TASK_TTL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultDownloadDir, cfg.DownloadDir)
	assert.Equal(t, DefaultCacheDir, cfg.CacheDir)
	assert.Empty(t, cfg.CookieFile)
	assert.Equal(t, DefaultCacheMaxAge, cfg.CacheMaxAge)
	assert.Equal(t, int64(DefaultCacheMaxBytes), cfg.CacheMaxBytes)
	assert.Equal(t, DefaultEvictionInterval, cfg.EvictionInterval)
	assert.Equal(t, DefaultTaskTTL, cfg.TaskTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("DOWNLOAD_DIR", "/srv/downloads")
	t.Setenv("CACHE_DIR", "/srv/cache")
	t.Setenv("COOKIE_FILE", "/etc/vidgrab/cookies.txt")
	t.Setenv("CACHE_MAX_AGE", "48h")
	t.Setenv("CACHE_MAX_BYTES", "1048576")
	t.Setenv("CACHE_EVICTION_INTERVAL", "5m")
	t.Setenv("TASK_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/srv/downloads", cfg.DownloadDir)
	assert.Equal(t, "/srv/cache", cfg.CacheDir)
	assert.Equal(t, "/etc/vidgrab/cookies.txt", cfg.CookieFile)
	assert.Equal(t, 48*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, int64(1048576), cfg.CacheMaxBytes)
	assert.Equal(t, 5*time.Minute, cfg.EvictionInterval)
	assert.Equal(t, 30*time.Minute, cfg.TaskTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_MalformedFallsBack(t *testing.T) {
	t.Setenv("CACHE_MAX_AGE", "yesterday")
	t.Setenv("CACHE_MAX_BYTES", "lots")
	t.Setenv("TASK_TTL", "-")

	cfg := FromEnv()
	assert.Equal(t, DefaultCacheMaxAge, cfg.CacheMaxAge)
	assert.Equal(t, int64(DefaultCacheMaxBytes), cfg.CacheMaxBytes)
	assert.Equal(t, DefaultTaskTTL, cfg.TaskTTL)
}
