package usecase

import (
	"sort"
	"time"

	"github.com/liamgecko/fantasy-football/external/espn"
)

// matchup describes a team's next scheduled game from the roster view:
// a short label like "vs KC" or "@ BUF" plus the local kickoff time.
type matchup struct {
	Label   string
	Kickoff string
}

// eventDateLayouts covers the timestamp shapes the schedule feed emits.
// Most events carry minute precision without seconds.
var eventDateLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
}

func parseEventDate(value string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// upcomingMatchup finds the first future event involving teamID, in
// chronological order. Events with unparseable dates are dropped.
func upcomingMatchup(schedule espn.TeamSchedule, teamID string, now time.Time) (matchup, bool) {
	type dated struct {
		event espn.ScheduleEvent
		date  time.Time
	}

	events := make([]dated, 0, len(schedule.Events))
	for _, event := range schedule.Events {
		ts, ok := parseEventDate(event.Date)
		if !ok {
			continue
		}
		events = append(events, dated{event: event, date: ts})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})

	for _, item := range events {
		if item.date.Before(now) {
			continue
		}
		if len(item.event.Competitions) == 0 {
			continue
		}
		competition := item.event.Competitions[0]

		var teamEntry, opponentEntry *espn.ScheduleCompetitor
		for i := range competition.Competitors {
			competitor := &competition.Competitors[i]
			if competitor.Team.ID == teamID {
				teamEntry = competitor
			} else if opponentEntry == nil {
				opponentEntry = competitor
			}
		}
		if teamEntry == nil {
			continue
		}
		if opponentEntry == nil {
			return matchup{}, false
		}

		opponent := opponentEntry.Team.Abbreviation
		if opponent == "" {
			opponent = opponentEntry.Team.DisplayName
		}
		if opponent == "" {
			return matchup{}, false
		}

		prefix := "@"
		if teamEntry.HomeAway == "home" {
			prefix = "vs"
		}

		return matchup{
			Label:   prefix + " " + opponent,
			Kickoff: item.date.Local().Format("Mon 15:04"),
		}, true
	}

	return matchup{}, false
}
