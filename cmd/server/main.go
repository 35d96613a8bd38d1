package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vidgrab/vidgrab/internal/api"
	"github.com/vidgrab/vidgrab/internal/cache"
	"github.com/vidgrab/vidgrab/internal/config"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/engine"
	"github.com/vidgrab/vidgrab/internal/extract"
	"github.com/vidgrab/vidgrab/internal/log"
	"github.com/vidgrab/vidgrab/internal/ytmusic"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log.Configure(log.Config{Level: cfg.LogLevel, Service: "vidgrab"})
	logger := log.WithComponent("main")

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DownloadDir).Msg("failed to create download dir")
	}

	artifactCache, err := cache.New(cfg.CacheDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.CacheDir).Msg("failed to init cache")
	}

	eng := engine.NewYTDLP(cfg.CookieFile)
	extractor := extract.New(eng)
	manager := download.NewManager(eng, extractor, artifactCache, cfg.DownloadDir)
	catalog := ytmusic.NewClient()

	server := api.New(extractor, manager, artifactCache, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go maintenanceLoop(ctx, cfg, artifactCache, manager)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Minute, // audio serving can be slow on range-heavy clients
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}
	logger.Info().Msg("server stopped")
}

// maintenanceLoop periodically evicts cache artifacts past the age/size
// watermarks and reaps terminal tasks from the registry.
func maintenanceLoop(ctx context.Context, cfg config.Config, artifactCache *cache.Manager, manager *download.Manager) {
	logger := log.WithComponent("maintenance")
	ticker := time.NewTicker(cfg.EvictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := artifactCache.Evict(cfg.CacheMaxAge, cfg.CacheMaxBytes)
			if err != nil {
				logger.Warn().Err(err).Msg("cache eviction pass failed")
			} else if removed > 0 {
				logger.Info().Int("removed", removed).Msg("cache eviction pass")
			}

			if reaped := manager.Reap(cfg.TaskTTL); reaped > 0 {
				logger.Info().Int("reaped", reaped).Msg("task registry reaped")
			}
		}
	}
}
