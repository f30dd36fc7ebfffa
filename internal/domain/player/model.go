package player

import (
	"github.com/liamgecko/fantasy-football/internal/domain/team"
)

// SnapshotSchemaVersion is bumped whenever the Record shape changes so
// stale persisted snapshots get rebuilt instead of half-decoded.
const SnapshotSchemaVersion = 4

// MadeAttempt is a successes-out-of-attempts pair used for kicking stats.
type MadeAttempt struct {
	Made     int `json:"made"`
	Attempts int `json:"attempts"`
}

// Position is the normalized fantasy position of a player.
type Position struct {
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Abbreviation string `json:"abbreviation"`
}

// Record is one denormalized player row in a snapshot. Every numeric
// statistic field is always present and zero-filled, never null.
type Record struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Jersey      string    `json:"jersey,omitempty"`
	Headshot    string    `json:"headshot,omitempty"`
	Team        team.Team `json:"team"`
	Position    *Position `json:"position,omitempty"`
	ByeWeek     int       `json:"byeWeek,omitempty"`
	Opponent    string    `json:"upcomingOpponent,omitempty"`
	Kickoff     string    `json:"kickoff,omitempty"`

	RushingAttempts   float64 `json:"rushingAttempts"`
	RushingYards      float64 `json:"rushingYards"`
	RushingTouchdowns float64 `json:"rushingTouchdowns"`

	Receptions          float64 `json:"receptions"`
	ReceivingTargets    float64 `json:"receivingTargets"`
	ReceivingYards      float64 `json:"receivingYards"`
	ReceivingTouchdowns float64 `json:"receivingTouchdowns"`

	Fumbles          float64 `json:"fumbles"`
	FumblesLost      float64 `json:"fumblesLost"`
	FumblesRecovered float64 `json:"fumblesRecovered"`

	SoloTackles         float64 `json:"soloTackles"`
	AssistedTackles     float64 `json:"assistedTackles"`
	TotalTackles        float64 `json:"totalTackles"`
	TacklesForLoss      float64 `json:"tacklesForLoss"`
	Sacks               float64 `json:"sacks"`
	ForcedFumbles       float64 `json:"forcedFumbles"`
	Interceptions       float64 `json:"interceptions"`
	DefensiveTouchdowns float64 `json:"defensiveTouchdowns"`
	Safeties            float64 `json:"safeties"`
	ReturnTouchdowns    float64 `json:"returnTouchdowns"`
	KicksBlocked        float64 `json:"kicksBlocked"`

	PassingYards           float64 `json:"passingYards"`
	PassingAttempts        float64 `json:"passingAttempts"`
	PassingCompletions     float64 `json:"passingCompletions"`
	PassingCompletionPct   float64 `json:"passingCompletionPct"`
	PassingYardsPerAttempt float64 `json:"passingYardsPerAttempt"`
	PassingTouchdowns      float64 `json:"passingTouchdowns"`
	PassingInterceptions   float64 `json:"passingInterceptions"`
	TimesSacked            float64 `json:"timesSacked"`
	PasserRating           float64 `json:"passerRating"`

	FieldGoals      MadeAttempt `json:"fieldGoals"`
	FieldGoalPct    float64     `json:"fieldGoalPct"`
	FieldGoals1to19 MadeAttempt `json:"fieldGoals_1_19"`
	FieldGoals20s   MadeAttempt `json:"fieldGoals_20_29"`
	FieldGoals30s   MadeAttempt `json:"fieldGoals_30_39"`
	FieldGoals40s   MadeAttempt `json:"fieldGoals_40_49"`
	FieldGoals50    MadeAttempt `json:"fieldGoals_50"`
	ExtraPoints     MadeAttempt `json:"extraPoints"`
	ExtraPointPct   float64     `json:"extraPointPct"`

	FantasyPoints float64 `json:"fantasyPoints"`
}

// SortKey is the collation key for snapshot ordering: last name when
// present, otherwise display name.
func (r Record) SortKey() string {
	if r.LastName != "" {
		return r.LastName
	}
	return r.DisplayName
}

// Snapshot is one complete materialized view of all active players for a
// season. It is read-only after creation; the next build supersedes it.
type Snapshot struct {
	SchemaVersion int      `json:"schemaVersion"`
	GeneratedAt   string   `json:"generatedAt"`
	Season        int      `json:"season"`
	Players       []Record `json:"players"`
}
