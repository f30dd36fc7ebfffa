package usecase

import (
	"testing"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/domain/player"
)

func statRow(season int, teamID, teamSlug string, stats []string) espn.AthleteStatRow {
	return espn.AthleteStatRow{
		TeamID:   teamID,
		TeamSlug: teamSlug,
		Season:   &espn.StatSeason{Year: season},
		Stats:    stats,
	}
}

func TestExtractSkillStats_PassingLine(t *testing.T) {
	t.Parallel()

	stats := espn.AthleteStats{Categories: []espn.AthleteStatCategory{
		{
			Name: "passing",
			Statistics: []espn.AthleteStatRow{
				statRow(2025, "8", "det", []string{"", "20", "30", "66.7", "1,250", "8.3", "2", "1", "", "3", "95.5"}),
			},
		},
	}}

	line := extractSkillStats(stats, 2025, "8")

	if line.PassingCompletions != 20 {
		t.Fatalf("expected 20 completions, got=%v", line.PassingCompletions)
	}
	if line.PassingAttempts != 30 {
		t.Fatalf("expected 30 attempts, got=%v", line.PassingAttempts)
	}
	if line.PassingCompletionPct != 66.7 {
		t.Fatalf("expected completion pct 66.7, got=%v", line.PassingCompletionPct)
	}
	if line.PassingYards != 1250 {
		t.Fatalf("expected comma-separated yards to parse to 1250, got=%v", line.PassingYards)
	}
	if line.PassingTouchdowns != 2 {
		t.Fatalf("expected 2 touchdowns, got=%v", line.PassingTouchdowns)
	}
	if line.PassingInterceptions != 1 {
		t.Fatalf("expected 1 interception, got=%v", line.PassingInterceptions)
	}
	if line.TimesSacked != 3 {
		t.Fatalf("expected 3 sacks taken, got=%v", line.TimesSacked)
	}
	if line.PasserRating != 95.5 {
		t.Fatalf("expected rating 95.5, got=%v", line.PasserRating)
	}
}

func TestExtractSkillStats_FumblesSumRushingAndReceiving(t *testing.T) {
	t.Parallel()

	stats := espn.AthleteStats{Categories: []espn.AthleteStatCategory{
		{
			Name: "rushing",
			Statistics: []espn.AthleteStatRow{
				statRow(2025, "8", "det", []string{"", "120", "540", "", "5", "", "", "2", "1"}),
			},
		},
		{
			Name: "receiving",
			Statistics: []espn.AthleteStatRow{
				statRow(2025, "8", "det", []string{"", "40", "55", "410", "", "3", "", "", "1", "1"}),
			},
		},
	}}

	line := extractSkillStats(stats, 2025, "8")

	if line.RushingAttempts != 120 || line.RushingYards != 540 || line.RushingTouchdowns != 5 {
		t.Fatalf("unexpected rushing line: %+v", line)
	}
	if line.Receptions != 40 || line.ReceivingTargets != 55 || line.ReceivingYards != 410 || line.ReceivingTouchdowns != 3 {
		t.Fatalf("unexpected receiving line: %+v", line)
	}
	if line.Fumbles != 3 {
		t.Fatalf("expected fumbles to sum to 3, got=%v", line.Fumbles)
	}
	if line.FumblesLost != 2 {
		t.Fatalf("expected fumbles lost to sum to 2, got=%v", line.FumblesLost)
	}
}

func TestExtractSkillStats_KickingLine(t *testing.T) {
	t.Parallel()

	stats := espn.AthleteStats{Categories: []espn.AthleteStatCategory{
		{
			Name: "kicking",
			Statistics: []espn.AthleteStatRow{
				statRow(2025, "8", "det", []string{"", "24-29", "82.8", "1-1", "8-8", "7-9", "6-8", "2-3", "", "32", "33"}),
			},
		},
	}}

	line := extractSkillStats(stats, 2025, "8")

	if line.FieldGoals != (player.MadeAttempt{Made: 24, Attempts: 29}) {
		t.Fatalf("unexpected field goals: %+v", line.FieldGoals)
	}
	if line.FieldGoalPct != 82.8 {
		t.Fatalf("expected field goal pct 82.8, got=%v", line.FieldGoalPct)
	}
	if line.FieldGoals50 != (player.MadeAttempt{Made: 2, Attempts: 3}) {
		t.Fatalf("unexpected 50+ bucket: %+v", line.FieldGoals50)
	}
	if line.ExtraPoints != (player.MadeAttempt{Made: 32, Attempts: 33}) {
		t.Fatalf("unexpected extra points: %+v", line.ExtraPoints)
	}
	if want := float64(32) / 33 * 100; line.ExtraPointPct != want {
		t.Fatalf("expected extra point pct %v, got=%v", want, line.ExtraPointPct)
	}
}

func TestExtractSkillStats_ExtraPointPctZeroAttempts(t *testing.T) {
	t.Parallel()

	stats := espn.AthleteStats{Categories: []espn.AthleteStatCategory{
		{
			Name: "kicking",
			Statistics: []espn.AthleteStatRow{
				statRow(2025, "8", "det", []string{"", "0-0", "0.0", "", "", "", "", "", "", "0", "0"}),
			},
		},
	}}

	line := extractSkillStats(stats, 2025, "8")
	if line.ExtraPointPct != 0 {
		t.Fatalf("expected zero pct on zero attempts, got=%v", line.ExtraPointPct)
	}
}

func TestFindSeasonRow_PrefersTeamThenTotals(t *testing.T) {
	t.Parallel()

	category := &espn.AthleteStatCategory{
		Name: "rushing",
		Statistics: []espn.AthleteStatRow{
			statRow(2025, "12", "all-nfl-totals", []string{"totals"}),
			statRow(2025, "7", "old-team", []string{"other"}),
			statRow(2025, "8", "det", []string{"team"}),
			statRow(2024, "8", "det", []string{"previous"}),
		},
	}

	row := findSeasonRow(category, 2025, "8")
	if row == nil || row.Stats[0] != "team" {
		t.Fatalf("expected the exact team split, got=%+v", row)
	}

	row = findSeasonRow(category, 2025, "99")
	if row == nil || row.Stats[0] != "totals" {
		t.Fatalf("expected the totals split fallback, got=%+v", row)
	}

	category.Statistics = category.Statistics[1:]
	row = findSeasonRow(category, 2025, "99")
	if row == nil || row.Stats[0] != "other" {
		t.Fatalf("expected the first season row fallback, got=%+v", row)
	}

	if row := findSeasonRow(category, 2020, "8"); row != nil {
		t.Fatalf("expected no row for an absent season, got=%+v", row)
	}
}

func TestApplyTo_OverwritesStaleStats(t *testing.T) {
	t.Parallel()

	rec := &player.Record{
		ID:           "123",
		DisplayName:  "Sam Tester",
		Opponent:     "vs KC",
		RushingYards: 999,
		Safeties:     2,
		KicksBlocked: 1,
	}

	line := skillStats{RushingYards: 540}
	line.applyTo(rec)

	if rec.RushingYards != 540 {
		t.Fatalf("expected rushing yards overwritten to 540, got=%v", rec.RushingYards)
	}
	if rec.Safeties != 0 || rec.KicksBlocked != 0 {
		t.Fatalf("expected team-only stats to reset, got safeties=%v kicksBlocked=%v", rec.Safeties, rec.KicksBlocked)
	}
	if rec.Opponent != "vs KC" || rec.DisplayName != "Sam Tester" {
		t.Fatal("expected identity and matchup fields untouched")
	}
}

func TestParseStatNumber(t *testing.T) {
	t.Parallel()

	if v, ok := parseStatNumber("1,204"); !ok || v != 1204 {
		t.Fatalf("expected 1204, got=%v ok=%v", v, ok)
	}
	if _, ok := parseStatNumber(""); ok {
		t.Fatal("expected empty string to be rejected")
	}
	if _, ok := parseStatNumber("--"); ok {
		t.Fatal("expected placeholder to be rejected")
	}
}

func TestParseMadeAttempt(t *testing.T) {
	t.Parallel()

	if got := parseMadeAttempt("24-29"); got != (player.MadeAttempt{Made: 24, Attempts: 29}) {
		t.Fatalf("unexpected pair: %+v", got)
	}
	if got := parseMadeAttempt(""); got != (player.MadeAttempt{}) {
		t.Fatalf("expected zero pair for empty input, got=%+v", got)
	}
	if got := parseMadeAttempt("24"); got != (player.MadeAttempt{Made: 24}) {
		t.Fatalf("expected attempts to default to zero, got=%+v", got)
	}
}
