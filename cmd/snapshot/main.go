package main

import (
	"context"
	"os"
	"time"

	"github.com/liamgecko/fantasy-football/internal/app"
	"github.com/liamgecko/fantasy-football/internal/config"
	"github.com/liamgecko/fantasy-football/internal/platform/logging"
)

// Rebuilds the player snapshot file from live ESPN data and writes it to
// SNAPSHOT_PATH, bypassing any cached copy on disk.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	client := app.NewESPNClient(cfg, logger)
	store := app.NewSnapshotStore(cfg, client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()

	snapshot, err := store.Rebuild(ctx)
	if err != nil {
		logger.Error("snapshot rebuild failed", "error", err)
		os.Exit(1)
	}

	logger.Info("snapshot written",
		"path", cfg.SnapshotPath,
		"players", len(snapshot.Players),
		"season", snapshot.Season,
		"generated_at", snapshot.GeneratedAt,
		"duration", time.Since(started).String(),
	)
}
