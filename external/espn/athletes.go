package espn

import (
	"context"
	"fmt"
	"strconv"
)

// ListAthletes pages through the league-wide athlete directory.
func (c *Client) ListAthletes(ctx context.Context, page, limit int) (AthletesPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20000
	}

	query := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}

	var data AthletesPage
	if err := c.coreV3JSON(ctx, "/athletes", query, &data); err != nil {
		return AthletesPage{}, fmt.Errorf("list athletes: %w", err)
	}
	return data, nil
}

// GetAthleteStats fetches one athlete's per-season statistic categories.
func (c *Client) GetAthleteStats(ctx context.Context, athleteID string, season int) (AthleteStats, error) {
	query := map[string]string{}
	if season > 0 {
		query["season"] = strconv.Itoa(season)
	}

	var data AthleteStats
	if err := c.webJSON(ctx, "/athletes/"+athleteID+"/stats", query, &data); err != nil {
		return AthleteStats{}, fmt.Errorf("get athlete stats athlete_id=%s: %w", athleteID, err)
	}
	return data, nil
}
