package espn

import (
	"context"
	"fmt"
	"strconv"
)

// ListTeams returns every franchise from the league directory. The wrapper
// nests teams under sports[0].leagues[0]; an absent wrapper yields an
// empty slice, not an error.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var data teamListResponse
	if err := c.siteJSON(ctx, "/teams", nil, &data); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	if len(data.Sports) == 0 || len(data.Sports[0].Leagues) == 0 {
		return []Team{}, nil
	}

	entries := data.Sports[0].Leagues[0].Teams
	out := make([]Team, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Team)
	}
	return out, nil
}

func (c *Client) GetTeamProfile(ctx context.Context, teamID string) (TeamProfile, error) {
	var data TeamProfile
	if err := c.siteJSON(ctx, "/teams/"+teamID, nil, &data); err != nil {
		return TeamProfile{}, fmt.Errorf("get team profile team_id=%s: %w", teamID, err)
	}
	return data, nil
}

func (c *Client) GetTeamRoster(ctx context.Context, teamID string, season int) (TeamRoster, error) {
	query := map[string]string{}
	if season > 0 {
		query["season"] = strconv.Itoa(season)
	}

	var data TeamRoster
	if err := c.siteJSON(ctx, "/teams/"+teamID+"/roster", query, &data); err != nil {
		return TeamRoster{}, fmt.Errorf("get team roster team_id=%s: %w", teamID, err)
	}
	return data, nil
}

func (c *Client) GetTeamSchedule(ctx context.Context, teamID string, season, seasonType int) (TeamSchedule, error) {
	query := map[string]string{}
	if season > 0 {
		query["season"] = strconv.Itoa(season)
	}
	if seasonType > 0 {
		query["seasontype"] = strconv.Itoa(seasonType)
	}

	var data TeamSchedule
	if err := c.siteJSON(ctx, "/teams/"+teamID+"/schedule", query, &data); err != nil {
		return TeamSchedule{}, fmt.Errorf("get team schedule team_id=%s: %w", teamID, err)
	}
	return data, nil
}

func (c *Client) GetTeamStatistics(ctx context.Context, teamID string, season, seasonType int) (TeamStatistics, error) {
	path := fmt.Sprintf("/seasons/%d/types/%d/teams/%s/statistics", season, seasonType, teamID)

	var data TeamStatistics
	if err := c.coreJSON(ctx, path, nil, &data); err != nil {
		return TeamStatistics{}, fmt.Errorf("get team statistics team_id=%s: %w", teamID, err)
	}
	return data, nil
}

func (c *Client) GetTeamRecord(ctx context.Context, teamID string, season, seasonType int) (TeamRecord, error) {
	path := fmt.Sprintf("/seasons/%d/types/%d/teams/%s/record", season, seasonType, teamID)

	var data TeamRecord
	if err := c.coreJSON(ctx, path, nil, &data); err != nil {
		return TeamRecord{}, fmt.Errorf("get team record team_id=%s: %w", teamID, err)
	}
	return data, nil
}

// Stat looks up one named team-level value inside the splits tree. The
// category and stat names are provider-defined and not validated; a
// missing entry reports ok=false so callers keep their zero defaults.
func (s TeamStatistics) Stat(categoryName, statName string) (float64, bool) {
	for _, category := range s.Splits.Categories {
		if category.Name != categoryName {
			continue
		}
		for _, stat := range category.Stats {
			if stat.Name == statName {
				return stat.Value, true
			}
		}
		return 0, false
	}
	return 0, false
}
