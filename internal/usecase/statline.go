package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/liamgecko/fantasy-football/external/espn"
	"github.com/liamgecko/fantasy-football/internal/domain/player"
)

// Positional indices into the string-encoded stat rows. The upstream
// feed fixes the column order per category, so the indices are part of
// the contract.
const (
	idxPassingCompletions      = 1
	idxPassingAttempts         = 2
	idxPassingCompletionPct    = 3
	idxPassingYards            = 4
	idxPassingYardsPerAttempt  = 5
	idxPassingTouchdowns       = 6
	idxPassingInterceptions    = 7
	idxPassingTimesSacked      = 9
	idxPassingPasserRating     = 10

	idxRushingAttempts    = 1
	idxRushingYards       = 2
	idxRushingTouchdowns  = 4
	idxRushingFumbles     = 7
	idxRushingFumblesLost = 8

	idxReceivingReceptions  = 1
	idxReceivingTargets     = 2
	idxReceivingYards       = 3
	idxReceivingTouchdowns  = 5
	idxReceivingFumbles     = 8
	idxReceivingFumblesLost = 9

	idxDefensiveSoloTackles      = 2
	idxDefensiveAssistedTackles  = 3
	idxDefensiveSacks            = 4
	idxDefensiveForcedFumbles    = 5
	idxDefensiveFumblesRecovered = 6
	idxDefensiveInterceptions    = 8
	idxDefensiveTouchdowns       = 11
	idxDefensiveTacklesForLoss   = 14

	idxKickingFieldGoals       = 1
	idxKickingFieldGoalPct     = 2
	idxKickingFieldGoals1to19  = 3
	idxKickingFieldGoals20s    = 4
	idxKickingFieldGoals30s    = 5
	idxKickingFieldGoals40s    = 6
	idxKickingFieldGoals50     = 7
	idxKickingExtraPointsMade  = 9
	idxKickingExtraPointsTried = 10
)

// skillStats is the flattened per-athlete season line extracted from the
// positional stat rows. Fields the feed does not expose per player stay
// zero.
type skillStats struct {
	RushingAttempts   float64
	RushingYards      float64
	RushingTouchdowns float64

	Receptions          float64
	ReceivingTargets    float64
	ReceivingYards      float64
	ReceivingTouchdowns float64

	Fumbles          float64
	FumblesLost      float64
	FumblesRecovered float64

	SoloTackles         float64
	AssistedTackles     float64
	TotalTackles        float64
	TacklesForLoss      float64
	Sacks               float64
	ForcedFumbles       float64
	Interceptions       float64
	DefensiveTouchdowns float64

	PassingYards           float64
	PassingAttempts        float64
	PassingCompletions     float64
	PassingCompletionPct   float64
	PassingYardsPerAttempt float64
	PassingTouchdowns      float64
	PassingInterceptions   float64
	TimesSacked            float64
	PasserRating           float64

	FieldGoals      player.MadeAttempt
	FieldGoalPct    float64
	FieldGoals1to19 player.MadeAttempt
	FieldGoals20s   player.MadeAttempt
	FieldGoals30s   player.MadeAttempt
	FieldGoals40s   player.MadeAttempt
	FieldGoals50    player.MadeAttempt
	ExtraPoints     player.MadeAttempt
	ExtraPointPct   float64
}

// extractSkillStats flattens an athlete stats payload into one season
// line for the given season and team.
func extractSkillStats(stats espn.AthleteStats, season int, teamID string) skillStats {
	passing := findSeasonRow(findStatCategory(stats, "passing"), season, teamID)
	rushing := findSeasonRow(findStatCategory(stats, "rushing"), season, teamID)
	receiving := findSeasonRow(findStatCategory(stats, "receiving"), season, teamID)
	defensive := findSeasonRow(findStatCategory(stats, "defensive"), season, teamID)
	kicking := findSeasonRow(findStatCategory(stats, "kicking"), season, teamID)

	solo := statNumber(defensive, idxDefensiveSoloTackles)
	assisted := statNumber(defensive, idxDefensiveAssistedTackles)

	extraPoints := player.MadeAttempt{
		Made:     int(statNumber(kicking, idxKickingExtraPointsMade)),
		Attempts: int(statNumber(kicking, idxKickingExtraPointsTried)),
	}
	var extraPointPct float64
	if extraPoints.Attempts != 0 {
		extraPointPct = float64(extraPoints.Made) / float64(extraPoints.Attempts) * 100
	}

	return skillStats{
		RushingAttempts:   statNumber(rushing, idxRushingAttempts),
		RushingYards:      statNumber(rushing, idxRushingYards),
		RushingTouchdowns: statNumber(rushing, idxRushingTouchdowns),

		Receptions:          statNumber(receiving, idxReceivingReceptions),
		ReceivingTargets:    statNumber(receiving, idxReceivingTargets),
		ReceivingYards:      statNumber(receiving, idxReceivingYards),
		ReceivingTouchdowns: statNumber(receiving, idxReceivingTouchdowns),

		Fumbles:          statNumber(rushing, idxRushingFumbles) + statNumber(receiving, idxReceivingFumbles),
		FumblesLost:      statNumber(rushing, idxRushingFumblesLost) + statNumber(receiving, idxReceivingFumblesLost),
		FumblesRecovered: statNumber(defensive, idxDefensiveFumblesRecovered),

		SoloTackles:         solo,
		AssistedTackles:     assisted,
		TotalTackles:        solo + assisted,
		TacklesForLoss:      statNumber(defensive, idxDefensiveTacklesForLoss),
		Sacks:               statNumber(defensive, idxDefensiveSacks),
		ForcedFumbles:       statNumber(defensive, idxDefensiveForcedFumbles),
		Interceptions:       statNumber(defensive, idxDefensiveInterceptions),
		DefensiveTouchdowns: statNumber(defensive, idxDefensiveTouchdowns),

		PassingYards:           statNumber(passing, idxPassingYards),
		PassingAttempts:        statNumber(passing, idxPassingAttempts),
		PassingCompletions:     statNumber(passing, idxPassingCompletions),
		PassingCompletionPct:   statNumber(passing, idxPassingCompletionPct),
		PassingYardsPerAttempt: statNumber(passing, idxPassingYardsPerAttempt),
		PassingTouchdowns:      statNumber(passing, idxPassingTouchdowns),
		PassingInterceptions:   statNumber(passing, idxPassingInterceptions),
		TimesSacked:            statNumber(passing, idxPassingTimesSacked),
		PasserRating:           statNumber(passing, idxPassingPasserRating),

		FieldGoals:      parseMadeAttempt(statString(kicking, idxKickingFieldGoals)),
		FieldGoalPct:    parsePct(statString(kicking, idxKickingFieldGoalPct)),
		FieldGoals1to19: parseMadeAttempt(statString(kicking, idxKickingFieldGoals1to19)),
		FieldGoals20s:   parseMadeAttempt(statString(kicking, idxKickingFieldGoals20s)),
		FieldGoals30s:   parseMadeAttempt(statString(kicking, idxKickingFieldGoals30s)),
		FieldGoals40s:   parseMadeAttempt(statString(kicking, idxKickingFieldGoals40s)),
		FieldGoals50:    parseMadeAttempt(statString(kicking, idxKickingFieldGoals50)),
		ExtraPoints:     extraPoints,
		ExtraPointPct:   extraPointPct,
	}
}

// applyTo overwrites the statistic fields of a player record. Identity
// and matchup fields are left untouched. Per-player feeds never carry
// safeties, return touchdowns, or blocked kicks, so those reset to zero
// like every other unreported stat.
func (s skillStats) applyTo(rec *player.Record) {
	rec.RushingAttempts = s.RushingAttempts
	rec.RushingYards = s.RushingYards
	rec.RushingTouchdowns = s.RushingTouchdowns

	rec.Receptions = s.Receptions
	rec.ReceivingTargets = s.ReceivingTargets
	rec.ReceivingYards = s.ReceivingYards
	rec.ReceivingTouchdowns = s.ReceivingTouchdowns

	rec.Fumbles = s.Fumbles
	rec.FumblesLost = s.FumblesLost
	rec.FumblesRecovered = s.FumblesRecovered

	rec.SoloTackles = s.SoloTackles
	rec.AssistedTackles = s.AssistedTackles
	rec.TotalTackles = s.TotalTackles
	rec.TacklesForLoss = s.TacklesForLoss
	rec.Sacks = s.Sacks
	rec.ForcedFumbles = s.ForcedFumbles
	rec.Interceptions = s.Interceptions
	rec.DefensiveTouchdowns = s.DefensiveTouchdowns
	rec.Safeties = 0
	rec.ReturnTouchdowns = 0
	rec.KicksBlocked = 0

	rec.PassingYards = s.PassingYards
	rec.PassingAttempts = s.PassingAttempts
	rec.PassingCompletions = s.PassingCompletions
	rec.PassingCompletionPct = s.PassingCompletionPct
	rec.PassingYardsPerAttempt = s.PassingYardsPerAttempt
	rec.PassingTouchdowns = s.PassingTouchdowns
	rec.PassingInterceptions = s.PassingInterceptions
	rec.TimesSacked = s.TimesSacked
	rec.PasserRating = s.PasserRating

	rec.FieldGoals = s.FieldGoals
	rec.FieldGoalPct = s.FieldGoalPct
	rec.FieldGoals1to19 = s.FieldGoals1to19
	rec.FieldGoals20s = s.FieldGoals20s
	rec.FieldGoals30s = s.FieldGoals30s
	rec.FieldGoals40s = s.FieldGoals40s
	rec.FieldGoals50 = s.FieldGoals50
	rec.ExtraPoints = s.ExtraPoints
	rec.ExtraPointPct = s.ExtraPointPct
}

func findStatCategory(stats espn.AthleteStats, name string) *espn.AthleteStatCategory {
	for i := range stats.Categories {
		if stats.Categories[i].Name == name {
			return &stats.Categories[i]
		}
	}
	return nil
}

// findSeasonRow picks the best row for a season: the exact team split
// first, then the season totals split, then any row for the season.
func findSeasonRow(category *espn.AthleteStatCategory, season int, teamID string) *espn.AthleteStatRow {
	if category == nil {
		return nil
	}
	rows := category.Statistics

	for i := range rows {
		if rowSeason(&rows[i]) == season && rows[i].TeamID == teamID {
			return &rows[i]
		}
	}
	for i := range rows {
		if rowSeason(&rows[i]) == season && strings.Contains(strings.ToLower(rows[i].TeamSlug), "totals") {
			return &rows[i]
		}
	}
	for i := range rows {
		if rowSeason(&rows[i]) == season {
			return &rows[i]
		}
	}
	return nil
}

func rowSeason(row *espn.AthleteStatRow) int {
	if row.Season == nil {
		return 0
	}
	return row.Season.Year
}

func statString(row *espn.AthleteStatRow, index int) string {
	if row == nil || index >= len(row.Stats) {
		return ""
	}
	return row.Stats[index]
}

func statNumber(row *espn.AthleteStatRow, index int) float64 {
	value, ok := parseStatNumber(statString(row, index))
	if !ok {
		return 0
	}
	return value
}

// parseStatNumber reads a display-formatted number like "1,204".
func parseStatNumber(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

// parseMadeAttempt reads a "made-attempts" pair like "24-29".
func parseMadeAttempt(value string) player.MadeAttempt {
	if value == "" {
		return player.MadeAttempt{}
	}
	made, attempts, _ := strings.Cut(value, "-")
	out := player.MadeAttempt{}
	if v, ok := parseStatNumber(made); ok {
		out.Made = int(v)
	}
	if v, ok := parseStatNumber(attempts); ok {
		out.Attempts = int(v)
	}
	return out
}

func parsePct(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0
	}
	return parsed
}
