package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/liamgecko/fantasy-football/internal/domain/player"
)

type snapshotSource interface {
	CurrentSnapshot(ctx context.Context) (player.Snapshot, error)
}

// ListActivePlayersInput narrows the snapshot listing. Both filters are
// optional; empty values match everything.
type ListActivePlayersInput struct {
	Position string
	Search   string
}

// PlayerService serves the snapshot-backed active player listing.
type PlayerService struct {
	source snapshotSource
}

func NewPlayerService(source snapshotSource) *PlayerService {
	return &PlayerService{source: source}
}

// ListActivePlayers returns players from the current snapshot, already
// sorted at build time. The position filter accepts the same synonyms
// as roster normalization, and search matches names case-insensitively.
func (s *PlayerService) ListActivePlayers(ctx context.Context, input ListActivePlayersInput) ([]player.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListActivePlayers")
	defer span.End()

	if s.source == nil {
		return nil, fmt.Errorf("%w: snapshot source is not configured", ErrDependencyUnavailable)
	}

	position := strings.TrimSpace(input.Position)
	if position != "" {
		normalized, ok := normalizePosition(position, "")
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
		}
		position = normalized
	}
	search := strings.ToLower(strings.TrimSpace(input.Search))

	snapshot, err := s.source.CurrentSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	result := make([]player.Record, 0, len(snapshot.Players))
	for _, rec := range snapshot.Players {
		if position != "" && (rec.Position == nil || rec.Position.Abbreviation != position) {
			continue
		}
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func matchesSearch(rec player.Record, search string) bool {
	if strings.Contains(strings.ToLower(rec.DisplayName), search) {
		return true
	}
	if rec.FirstName != "" && strings.Contains(strings.ToLower(rec.FirstName), search) {
		return true
	}
	return rec.LastName != "" && strings.Contains(strings.ToLower(rec.LastName), search)
}
