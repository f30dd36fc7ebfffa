package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/domain/player"
	"github.com/liamgecko/fantasy-football/internal/domain/team"
	"github.com/liamgecko/fantasy-football/internal/platform/cache"
	"github.com/liamgecko/fantasy-football/internal/platform/logging"
)

// regularSeasonType is the provider's season type id for the regular
// season. Snapshots never cover preseason or playoffs.
const regularSeasonType = 2

type snapshotProvider interface {
	ListTeams(ctx context.Context) ([]espn.Team, error)
	GetTeamRoster(ctx context.Context, teamID string, season int) (espn.TeamRoster, error)
	GetTeamSchedule(ctx context.Context, teamID string, season, seasonType int) (espn.TeamSchedule, error)
	GetTeamStatistics(ctx context.Context, teamID string, season, seasonType int) (espn.TeamStatistics, error)
	GetAthleteStats(ctx context.Context, athleteID string, season int) (espn.AthleteStats, error)
}

// SnapshotService builds the denormalized active-player snapshot: every
// rostered player at a fantasy-relevant position plus one defensive
// pseudo-player per team, each carrying season-to-date statistics and
// the next matchup.
type SnapshotService struct {
	provider  snapshotProvider
	logger    *logging.Logger
	workers   int
	batchSize int
	now       func() time.Time
}

func NewSnapshotService(provider snapshotProvider, logger *logging.Logger, workers, batchSize int) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &SnapshotService{
		provider:  provider,
		logger:    logger,
		workers:   workers,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// BuildSnapshot assembles a fresh snapshot for the current season. Teams
// that fail to enrich are logged and skipped so one bad upstream payload
// never sinks the whole build.
func (s *SnapshotService) BuildSnapshot(ctx context.Context) (player.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.BuildSnapshot")
	defer span.End()

	if s.provider == nil {
		return player.Snapshot{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	teams, err := s.provider.ListTeams(ctx)
	if err != nil {
		return player.Snapshot{}, fmt.Errorf("list teams: %w", err)
	}

	season := player.CurrentSeason(s.now())

	valid := make([]espn.Team, 0, len(teams))
	players := make(map[string]*player.Record, len(teams)*64)
	for _, item := range teams {
		rec := newDefenseRecord(item)
		if err := rec.Team.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping team with incomplete identity",
				"team_id", item.ID,
				"error", err,
			)
			continue
		}
		players[rec.ID] = rec
		valid = append(valid, item)
	}

	if err := s.enrichTeams(ctx, valid, season, players); err != nil {
		return player.Snapshot{}, err
	}

	result := make([]*player.Record, 0, len(players))
	for _, rec := range players {
		if rec.DisplayName == "" {
			continue
		}
		result = append(result, rec)
	}
	sortRecords(result)

	s.enrichSkillStats(ctx, result, season)

	out := make([]player.Record, len(result))
	for i, rec := range result {
		out[i] = *rec
	}

	return player.Snapshot{
		SchemaVersion: player.SnapshotSchemaVersion,
		GeneratedAt:   s.now().UTC().Format(time.RFC3339),
		Season:        season,
		Players:       out,
	}, nil
}

// enrichTeams walks every team concurrently, filling in the defensive
// pseudo-player and adding the active roster. A failure on one team is
// logged and that team's players stay unenriched.
func (s *SnapshotService) enrichTeams(ctx context.Context, teams []espn.Team, season int, players map[string]*player.Record) error {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	return s.runTeamTasks(ctx, teams, season, players, pool.Submit)
}

// runTeamTasks schedules one enrichment task per team and waits for every
// submitted task to finish, even when a later submission fails, so callers
// never observe the players map while tasks are still writing to it.
func (s *SnapshotService) runTeamTasks(ctx context.Context, teams []espn.Team, season int, players map[string]*player.Record, submit func(func()) error) error {
	var mu sync.Mutex
	var workers sync.WaitGroup

	for _, item := range teams {
		item := item
		workers.Add(1)
		if err := submit(func() {
			defer workers.Done()

			if err := s.enrichTeam(ctx, item, season, players, &mu); err != nil {
				s.logger.ErrorContext(ctx, "enrich team failed",
					"team_id", item.ID,
					"season", season,
					"error", err,
				)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit team to worker pool: %w", err)
		}
	}

	workers.Wait()
	return nil
}

func (s *SnapshotService) enrichTeam(ctx context.Context, item espn.Team, season int, players map[string]*player.Record, mu *sync.Mutex) error {
	roster, err := s.provider.GetTeamRoster(ctx, item.ID, season)
	if err != nil {
		return fmt.Errorf("fetch roster: %w", err)
	}
	schedule, err := s.provider.GetTeamSchedule(ctx, item.ID, season, regularSeasonType)
	if err != nil {
		return fmt.Errorf("fetch schedule: %w", err)
	}
	statistics, err := s.provider.GetTeamStatistics(ctx, item.ID, season, regularSeasonType)
	if err != nil {
		return fmt.Errorf("fetch statistics: %w", err)
	}

	byeWeek := schedule.ByeWeek
	upcoming, hasUpcoming := upcomingMatchup(schedule, roster.Team.ID, s.now())

	mu.Lock()
	defer mu.Unlock()

	if dst, ok := players[defenseID(item.ID)]; ok {
		dst.ByeWeek = byeWeek
		if hasUpcoming {
			dst.Opponent = upcoming.Label
			dst.Kickoff = upcoming.Kickoff
		}
		applyDefenseStats(dst, statistics)
	}

	for _, group := range roster.Athletes {
		for _, athlete := range group.Items {
			if athlete.Status != nil && athlete.Status.Type != "" && athlete.Status.Type != "active" {
				continue
			}
			if _, exists := players[athlete.ID]; exists {
				continue
			}

			rec, ok := newRosterRecord(athlete, roster.Team)
			if !ok {
				continue
			}
			rec.ByeWeek = byeWeek
			if hasUpcoming {
				rec.Opponent = upcoming.Label
				rec.Kickoff = upcoming.Kickoff
			}
			players[athlete.ID] = rec
		}
	}

	return nil
}

// enrichSkillStats overlays per-athlete season lines in fixed-size
// batches. Results are memoized per (athlete, team, season) so players
// appearing twice never trigger a second fetch, failed lookups included.
func (s *SnapshotService) enrichSkillStats(ctx context.Context, records []*player.Record, season int) {
	memo := cache.NewStore(0)

	type statsResult struct {
		stats skillStats
		ok    bool
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		var wg conc.WaitGroup
		for _, rec := range batch {
			rec := rec
			wg.Go(func() {
				key := rec.ID + ":" + rec.Team.ID + ":" + strconv.Itoa(season)
				value, _ := memo.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
					raw, err := s.provider.GetAthleteStats(ctx, rec.ID, season)
					if err != nil {
						s.logger.DebugContext(ctx, "fetch athlete stats failed",
							"athlete_id", rec.ID,
							"season", season,
							"error", err,
						)
						return statsResult{}, nil
					}
					return statsResult{stats: extractSkillStats(raw, season, rec.Team.ID), ok: true}, nil
				})
				if result, ok := value.(statsResult); ok && result.ok {
					result.stats.applyTo(rec)
				}
			})
		}
		wg.Wait()
	}
}

func defenseID(teamID string) string {
	return "dst-" + teamID
}

// newDefenseRecord seeds the defensive pseudo-player for a team. All
// statistics start at zero and are overlaid later from the team stats
// feed.
func newDefenseRecord(item espn.Team) *player.Record {
	rec := &player.Record{
		ID:          defenseID(item.ID),
		DisplayName: item.DisplayName,
		Team: team.Team{
			ID:           item.ID,
			DisplayName:  item.DisplayName,
			Abbreviation: item.Abbreviation,
			Location:     item.Location,
			Name:         item.Name,
		},
		Position: &player.Position{
			Name:         dstDisplayName,
			DisplayName:  dstDisplayName,
			Abbreviation: "D/ST",
		},
	}
	if len(item.Logos) > 0 {
		rec.Headshot = item.Logos[0].Href
	}
	return rec
}

// newRosterRecord maps a roster athlete onto a snapshot record. Athletes
// whose position does not normalize to the fantasy set are excluded.
func newRosterRecord(athlete espn.RosterAthlete, rosterTeam espn.RosterTeam) (*player.Record, bool) {
	var abbreviation, displayName string
	if athlete.Position != nil {
		abbreviation = athlete.Position.Abbreviation
		displayName = athlete.Position.DisplayName
	}
	normalized, ok := normalizePosition(abbreviation, displayName)
	if !ok {
		return nil, false
	}

	rec := &player.Record{
		ID:          athlete.ID,
		DisplayName: athlete.DisplayName,
		FirstName:   athlete.FirstName,
		LastName:    athlete.LastName,
		Jersey:      athlete.Jersey,
		Team: team.Team{
			ID:           rosterTeam.ID,
			DisplayName:  rosterTeam.DisplayName,
			Abbreviation: rosterTeam.Abbreviation,
			Location:     rosterTeam.Location,
			Name:         rosterTeam.Name,
		},
	}
	if athlete.Headshot != nil {
		rec.Headshot = athlete.Headshot.Href
	}
	if athlete.Position != nil {
		rec.Position = &player.Position{
			Name:         athlete.Position.Name,
			DisplayName:  athlete.Position.DisplayName,
			Abbreviation: normalized,
		}
	}
	return rec, true
}

// applyDefenseStats overlays the season team statistics feed onto the
// defensive pseudo-player. Present values overwrite; absent values keep
// the existing number, except return touchdowns which always resolve to
// the kick and punt return sum.
func applyDefenseStats(rec *player.Record, statistics espn.TeamStatistics) {
	if v, ok := statistics.Stat("defensive", "soloTackles"); ok {
		rec.SoloTackles = v
	}
	if v, ok := statistics.Stat("defensive", "assistTackles"); ok {
		rec.AssistedTackles = v
	}
	if v, ok := statistics.Stat("defensive", "totalTackles"); ok {
		rec.TotalTackles = v
	}
	if v, ok := statistics.Stat("defensive", "sacks"); ok {
		rec.Sacks = v
	}
	if v, ok := statistics.Stat("defensiveInterceptions", "interceptions"); ok {
		rec.Interceptions = v
	}
	if v, ok := statistics.Stat("defensive", "safeties"); ok {
		rec.Safeties = v
	}
	if v, ok := statistics.Stat("general", "fumblesForced"); ok {
		rec.ForcedFumbles = v
	}
	if v, ok := statistics.Stat("general", "fumblesRecovered"); ok {
		rec.FumblesRecovered = v
	}
	if v, ok := statistics.Stat("defensive", "defensiveTouchdowns"); ok {
		rec.DefensiveTouchdowns = v
	}

	kickReturns, _ := statistics.Stat("returning", "kickReturnTouchdowns")
	puntReturns, _ := statistics.Stat("returning", "puntReturnTouchdowns")
	rec.ReturnTouchdowns = kickReturns + puntReturns

	if v, ok := statistics.Stat("defensive", "kicksBlocked"); ok {
		rec.KicksBlocked = v
	}
}

// sortRecords orders players by last name, falling back to display name,
// using case-insensitive English collation.
func sortRecords(records []*player.Record) {
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(records[i].SortKey())
		b := strings.ToLower(records[j].SortKey())
		return collator.CompareString(a, b) < 0
	})
}
