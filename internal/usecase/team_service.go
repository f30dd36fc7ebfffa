package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/liamgecko/fantasy-football/external/espn"
)

type teamProvider interface {
	ListTeams(ctx context.Context) ([]espn.Team, error)
	GetTeamProfile(ctx context.Context, teamID string) (espn.TeamProfile, error)
	GetTeamRoster(ctx context.Context, teamID string, season int) (espn.TeamRoster, error)
	GetTeamSchedule(ctx context.Context, teamID string, season, seasonType int) (espn.TeamSchedule, error)
	GetTeamStatistics(ctx context.Context, teamID string, season, seasonType int) (espn.TeamStatistics, error)
	GetTeamRecord(ctx context.Context, teamID string, season, seasonType int) (espn.TeamRecord, error)
}

// TeamDetail aggregates every per-team view the provider exposes into a
// single payload.
type TeamDetail struct {
	Profile    espn.TeamProfile    `json:"profile"`
	Roster     espn.TeamRoster     `json:"roster"`
	Schedule   espn.TeamSchedule   `json:"schedule"`
	Statistics espn.TeamStatistics `json:"statistics"`
	Record     espn.TeamRecord     `json:"record"`
}

// TeamService serves the team directory and the aggregated team detail.
type TeamService struct {
	provider teamProvider
}

func NewTeamService(provider teamProvider) *TeamService {
	return &TeamService{provider: provider}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]espn.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	teams, err := s.provider.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if teams == nil {
		teams = []espn.Team{}
	}
	return teams, nil
}

// GetTeamDetail fetches all five per-team views concurrently. Any single
// fetch failing fails the whole detail, so callers never see a partial
// payload.
func (s *TeamService) GetTeamDetail(ctx context.Context, teamID string, season, seasonType int) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamDetail")
	defer span.End()

	if s.provider == nil {
		return TeamDetail{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}
	if strings.TrimSpace(teamID) == "" {
		return TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	var detail TeamDetail

	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		profile, err := s.provider.GetTeamProfile(ctx, teamID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		detail.Profile = profile
		return nil
	})
	group.Go(func(ctx context.Context) error {
		roster, err := s.provider.GetTeamRoster(ctx, teamID, season)
		if err != nil {
			return fmt.Errorf("fetch roster: %w", err)
		}
		detail.Roster = roster
		return nil
	})
	group.Go(func(ctx context.Context) error {
		schedule, err := s.provider.GetTeamSchedule(ctx, teamID, season, seasonType)
		if err != nil {
			return fmt.Errorf("fetch schedule: %w", err)
		}
		detail.Schedule = schedule
		return nil
	})
	group.Go(func(ctx context.Context) error {
		statistics, err := s.provider.GetTeamStatistics(ctx, teamID, season, seasonType)
		if err != nil {
			return fmt.Errorf("fetch statistics: %w", err)
		}
		detail.Statistics = statistics
		return nil
	})
	group.Go(func(ctx context.Context) error {
		record, err := s.provider.GetTeamRecord(ctx, teamID, season, seasonType)
		if err != nil {
			return fmt.Errorf("fetch record: %w", err)
		}
		detail.Record = record
		return nil
	})

	if err := group.Wait(); err != nil {
		return TeamDetail{}, fmt.Errorf("team detail team_id=%s: %w", teamID, err)
	}

	return detail, nil
}
