package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/domain/player"
	"github.com/liamgecko/fantasy-football/internal/platform/logging"
)

func snapshotTestTime() time.Time {
	return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
}

func newSnapshotServiceForTest(provider snapshotProvider) *SnapshotService {
	return &SnapshotService{
		provider:  provider,
		logger:    logging.NewNop(),
		workers:   2,
		batchSize: 2,
		now:       snapshotTestTime,
	}
}

func TestSnapshotService_BuildSnapshot(t *testing.T) {
	t.Parallel()

	provider := &stubSnapshotProvider{
		teams: []espn.Team{
			{ID: "1", DisplayName: "Detroit Lions", Abbreviation: "DET", Logos: []espn.Image{{Href: "https://img.example/det.png"}}},
			{ID: "2", DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
		},
		failRosterTeam: "2",
		athleteStats: map[string]espn.AthleteStats{
			"11": {Categories: []espn.AthleteStatCategory{
				{
					Name: "passing",
					Statistics: []espn.AthleteStatRow{
						statRow(2025, "1", "det", []string{"", "20", "30", "66.7", "1,250", "8.3", "2", "1", "", "3", "95.5"}),
					},
				},
			}},
		},
	}

	svc := newSnapshotServiceForTest(provider)

	snapshot, err := svc.BuildSnapshot(context.Background())
	if err != nil {
		t.Fatalf("BuildSnapshot error: %v", err)
	}

	if snapshot.SchemaVersion != player.SnapshotSchemaVersion {
		t.Fatalf("expected schema version %d, got=%d", player.SnapshotSchemaVersion, snapshot.SchemaVersion)
	}
	if snapshot.Season != 2025 {
		t.Fatalf("expected season 2025, got=%d", snapshot.Season)
	}
	if snapshot.GeneratedAt != "2025-10-01T12:00:00Z" {
		t.Fatalf("unexpected generatedAt: %q", snapshot.GeneratedAt)
	}

	var names []string
	for _, rec := range snapshot.Players {
		names = append(names, rec.DisplayName)
	}
	want := []string{"Amon-Ra Adams", "Buffalo Bills", "Detroit Lions", "Zed Zebra"}
	if len(names) != len(want) {
		t.Fatalf("expected players %v, got=%v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected players %v, got=%v", want, names)
		}
	}

	byID := make(map[string]player.Record, len(snapshot.Players))
	for _, rec := range snapshot.Players {
		byID[rec.ID] = rec
	}

	dst := byID["dst-1"]
	if dst.Position == nil || dst.Position.Abbreviation != "D/ST" {
		t.Fatalf("expected defense position on pseudo-player, got=%+v", dst.Position)
	}
	if dst.Headshot != "https://img.example/det.png" {
		t.Fatalf("expected team logo as defense headshot, got=%q", dst.Headshot)
	}
	if dst.ByeWeek != 5 {
		t.Fatalf("expected bye week 5, got=%d", dst.ByeWeek)
	}
	if dst.Opponent != "vs KC" {
		t.Fatalf("expected upcoming opponent on defense, got=%q", dst.Opponent)
	}
	if dst.Sacks != 41 || dst.Interceptions != 14 {
		t.Fatalf("unexpected defense stats overlay: sacks=%v interceptions=%v", dst.Sacks, dst.Interceptions)
	}
	if dst.ReturnTouchdowns != 3 {
		t.Fatalf("expected kick and punt return touchdowns to sum to 3, got=%v", dst.ReturnTouchdowns)
	}

	if untouched := byID["dst-2"]; untouched.Sacks != 0 || untouched.ByeWeek != 0 {
		t.Fatalf("expected failed team's defense to stay unenriched, got=%+v", untouched)
	}

	passer := byID["11"]
	if passer.PassingYards != 1250 || passer.PassingTouchdowns != 2 {
		t.Fatalf("unexpected passer stats overlay: %+v", passer)
	}
	if passer.Opponent != "vs KC" || passer.ByeWeek != 5 {
		t.Fatalf("expected matchup fields on roster players, got=%+v", passer)
	}

	if rec := byID["12"]; rec.PassingYards != 0 {
		t.Fatalf("expected zeroed stats when the athlete fetch fails, got=%+v", rec)
	}

	if _, exists := byID["13"]; exists {
		t.Fatal("expected inactive athlete to be excluded")
	}
	if _, exists := byID["14"]; exists {
		t.Fatal("expected non-fantasy position to be excluded")
	}

	if calls := provider.statsCallCount("11"); calls != 1 {
		t.Fatalf("expected one stats fetch per athlete, got=%d", calls)
	}
}

func TestSnapshotService_BuildSnapshot_ListTeamsError(t *testing.T) {
	t.Parallel()

	svc := newSnapshotServiceForTest(&stubSnapshotProvider{teamsErr: fmt.Errorf("upstream down")})

	if _, err := svc.BuildSnapshot(context.Background()); err == nil {
		t.Fatal("expected the team listing failure to fail the build")
	}
}

func TestSnapshotService_BuildSnapshot_DeduplicatesRosterEntries(t *testing.T) {
	t.Parallel()

	provider := &stubSnapshotProvider{
		teams: []espn.Team{
			{ID: "1", DisplayName: "Detroit Lions", Abbreviation: "DET"},
		},
		duplicateRoster: true,
	}

	svc := newSnapshotServiceForTest(provider)

	snapshot, err := svc.BuildSnapshot(context.Background())
	if err != nil {
		t.Fatalf("BuildSnapshot error: %v", err)
	}

	seen := 0
	for _, rec := range snapshot.Players {
		if rec.ID == "11" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("expected duplicated roster entry to appear once, got=%d", seen)
	}
}

func TestSnapshotService_BuildSnapshot_SkipsTeamsWithIncompleteIdentity(t *testing.T) {
	t.Parallel()

	provider := &stubSnapshotProvider{
		teams: []espn.Team{
			{ID: "1", DisplayName: "Detroit Lions", Abbreviation: "DET"},
			{ID: "99"},
		},
	}

	svc := newSnapshotServiceForTest(provider)

	snapshot, err := svc.BuildSnapshot(context.Background())
	if err != nil {
		t.Fatalf("BuildSnapshot error: %v", err)
	}

	for _, rec := range snapshot.Players {
		if rec.ID == defenseID("99") {
			t.Fatal("expected no defense pseudo-player for a team without a display name")
		}
		if rec.Team.ID == "99" {
			t.Fatalf("expected no players from the skipped team, got=%+v", rec)
		}
	}
}

func TestSnapshotService_RunTeamTasks_WaitsForInFlightTasksOnSubmitError(t *testing.T) {
	t.Parallel()

	provider := &gatedSnapshotProvider{
		stubSnapshotProvider: &stubSnapshotProvider{},
		gate:                 make(chan struct{}),
	}
	svc := newSnapshotServiceForTest(provider)

	teams := []espn.Team{
		{ID: "1", DisplayName: "Detroit Lions", Abbreviation: "DET"},
		{ID: "2", DisplayName: "Buffalo Bills", Abbreviation: "BUF"},
	}
	players := map[string]*player.Record{
		defenseID("1"): {ID: defenseID("1")},
		defenseID("2"): {ID: defenseID("2")},
	}

	submissions := 0
	submit := func(task func()) error {
		submissions++
		if submissions == 1 {
			go task()
			return nil
		}
		close(provider.gate)
		return fmt.Errorf("worker pool is closed")
	}

	if err := svc.runTeamTasks(context.Background(), teams, 2025, players, submit); err == nil {
		t.Fatal("expected the submit failure to surface")
	}
	if got := players[defenseID("1")].ByeWeek; got != 5 {
		t.Fatalf("expected the in-flight task to finish before the error returns, got bye week=%d", got)
	}
}

type stubSnapshotProvider struct {
	teams           []espn.Team
	teamsErr        error
	failRosterTeam  string
	duplicateRoster bool
	athleteStats    map[string]espn.AthleteStats

	mu         sync.Mutex
	statsCalls map[string]int
}

func (s *stubSnapshotProvider) ListTeams(_ context.Context) ([]espn.Team, error) {
	if s.teamsErr != nil {
		return nil, s.teamsErr
	}
	return s.teams, nil
}

func (s *stubSnapshotProvider) GetTeamRoster(_ context.Context, teamID string, _ int) (espn.TeamRoster, error) {
	if teamID == s.failRosterTeam {
		return espn.TeamRoster{}, fmt.Errorf("roster unavailable for team %s", teamID)
	}

	roster := espn.TeamRoster{}
	roster.Team = espn.RosterTeam{ID: teamID, DisplayName: "Detroit Lions", Abbreviation: "DET"}

	offense := espn.RosterGroup{Position: "offense", Items: []espn.RosterAthlete{
		{
			ID:          "11",
			DisplayName: "Amon-Ra Adams",
			FirstName:   "Amon-Ra",
			LastName:    "Adams",
			Position:    &espn.RosterPosition{Name: "Quarterback", DisplayName: "Quarterback", Abbreviation: "QB"},
			Status:      &espn.RosterStatus{Type: "active"},
		},
		{
			ID:          "12",
			DisplayName: "Zed Zebra",
			FirstName:   "Zed",
			LastName:    "Zebra",
			Position:    &espn.RosterPosition{Name: "Wide Receiver", DisplayName: "Wide Receiver", Abbreviation: "WR"},
		},
		{
			ID:          "13",
			DisplayName: "Ira Injured",
			LastName:    "Injured",
			Position:    &espn.RosterPosition{Abbreviation: "RB"},
			Status:      &espn.RosterStatus{Type: "injured-reserve"},
		},
		{
			ID:          "14",
			DisplayName: "Otto Lineman",
			LastName:    "Lineman",
			Position:    &espn.RosterPosition{Name: "Offensive Tackle", DisplayName: "Offensive Tackle", Abbreviation: "OT"},
		},
	}}
	roster.Athletes = []espn.RosterGroup{offense}

	if s.duplicateRoster {
		roster.Athletes = append(roster.Athletes, espn.RosterGroup{Position: "practice", Items: offense.Items[:1]})
	}

	return roster, nil
}

func (s *stubSnapshotProvider) GetTeamSchedule(_ context.Context, teamID string, _, _ int) (espn.TeamSchedule, error) {
	schedule := espn.TeamSchedule{ByeWeek: 5}
	schedule.Team.ID = teamID
	schedule.Events = []espn.ScheduleEvent{
		scheduleEvent("2025-10-05T17:00Z", teamID, "KC", "Kansas City Chiefs", "home"),
	}
	return schedule, nil
}

func (s *stubSnapshotProvider) GetTeamStatistics(_ context.Context, _ string, _, _ int) (espn.TeamStatistics, error) {
	statistics := espn.TeamStatistics{}
	statistics.Splits.Categories = []espn.TeamStatCategory{
		{Name: "defensive", Stats: []espn.TeamStatValue{
			{Name: "sacks", Value: 41},
		}},
		{Name: "defensiveInterceptions", Stats: []espn.TeamStatValue{
			{Name: "interceptions", Value: 14},
		}},
		{Name: "returning", Stats: []espn.TeamStatValue{
			{Name: "kickReturnTouchdowns", Value: 2},
			{Name: "puntReturnTouchdowns", Value: 1},
		}},
	}
	return statistics, nil
}

func (s *stubSnapshotProvider) GetAthleteStats(_ context.Context, athleteID string, _ int) (espn.AthleteStats, error) {
	s.mu.Lock()
	if s.statsCalls == nil {
		s.statsCalls = make(map[string]int)
	}
	s.statsCalls[athleteID]++
	s.mu.Unlock()

	stats, ok := s.athleteStats[athleteID]
	if !ok {
		return espn.AthleteStats{}, fmt.Errorf("no stats for athlete %s", athleteID)
	}
	return stats, nil
}

func (s *stubSnapshotProvider) statsCallCount(athleteID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsCalls[athleteID]
}

// gatedSnapshotProvider holds roster fetches until the gate closes.
type gatedSnapshotProvider struct {
	*stubSnapshotProvider
	gate chan struct{}
}

func (g *gatedSnapshotProvider) GetTeamRoster(ctx context.Context, teamID string, season int) (espn.TeamRoster, error) {
	<-g.gate
	return g.stubSnapshotProvider.GetTeamRoster(ctx, teamID, season)
}
