// Package snapshotstore persists player snapshots as a single JSON file
// and rebuilds them on demand when the stored copy goes stale.
package snapshotstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/liamgecko/fantasy-football/internal/domain/player"
	"github.com/liamgecko/fantasy-football/internal/platform/logging"
	"github.com/liamgecko/fantasy-football/internal/platform/resilience"
)

// Builder produces a fresh snapshot when the stored one cannot be used.
type Builder interface {
	BuildSnapshot(ctx context.Context) (player.Snapshot, error)
}

type Store struct {
	path    string
	builder Builder
	logger  *logging.Logger
	now     func() time.Time
	flight  resilience.SingleFlight
}

func New(path string, builder Builder, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		path:    path,
		builder: builder,
		logger:  logger,
		now:     time.Now,
	}
}

// CurrentSnapshot returns the stored snapshot when it is fresh,
// otherwise rebuilds, persists, and returns the new one. Concurrent
// callers share a single rebuild.
func (s *Store) CurrentSnapshot(ctx context.Context) (player.Snapshot, error) {
	value, err, _ := s.flight.Do("snapshot", func() (any, error) {
		return s.loadOrRebuild(ctx)
	})
	if err != nil {
		return player.Snapshot{}, err
	}
	snapshot, ok := value.(player.Snapshot)
	if !ok {
		return player.Snapshot{}, fmt.Errorf("unexpected snapshot type %T", value)
	}
	return snapshot, nil
}

func (s *Store) loadOrRebuild(ctx context.Context) (player.Snapshot, error) {
	if snapshot, ok := s.loadFresh(ctx); ok {
		return snapshot, nil
	}

	s.logger.WarnContext(ctx, "player snapshot missing or stale, rebuilding", "path", s.path)

	return s.Rebuild(ctx)
}

// Rebuild builds a fresh snapshot and persists it, ignoring any stored copy.
func (s *Store) Rebuild(ctx context.Context) (player.Snapshot, error) {
	if s.builder == nil {
		return player.Snapshot{}, fmt.Errorf("snapshot builder is not configured")
	}
	snapshot, err := s.builder.BuildSnapshot(ctx)
	if err != nil {
		return player.Snapshot{}, fmt.Errorf("rebuild snapshot: %w", err)
	}
	if err := s.Save(ctx, snapshot); err != nil {
		return player.Snapshot{}, err
	}
	return snapshot, nil
}

// loadFresh reads the stored snapshot and reports whether it is usable:
// parseable, populated, current season, and current schema version.
func (s *Store) loadFresh(ctx context.Context) (player.Snapshot, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return player.Snapshot{}, false
	}

	var snapshot player.Snapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		s.logger.WarnContext(ctx, "stored snapshot is unparseable", "path", s.path, "error", err)
		return player.Snapshot{}, false
	}

	if snapshot.Players == nil {
		return player.Snapshot{}, false
	}
	if snapshot.Season != player.CurrentSeason(s.now()) {
		return player.Snapshot{}, false
	}
	if snapshot.SchemaVersion != player.SnapshotSchemaVersion {
		return player.Snapshot{}, false
	}

	return snapshot, true
}

// Save writes the snapshot atomically: encode into a pooled buffer,
// write a temp file next to the target, then rename over it.
func (s *Store) Save(ctx context.Context, snapshot player.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigDefault.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	s.logger.InfoContext(ctx, "player snapshot saved",
		"path", s.path,
		"players", len(snapshot.Players),
		"season", snapshot.Season,
	)
	return nil
}
