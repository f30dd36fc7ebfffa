package usecase

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/liamgecko/fantasy-football/external/espn"
)

type athleteProvider interface {
	ListAthletes(ctx context.Context, page, limit int) (espn.AthletesPage, error)
}

// AthleteDirectory is one page of the league-wide athlete listing.
type AthleteDirectory struct {
	Meta     AthleteDirectoryMeta `json:"meta"`
	Athletes []espn.Athlete       `json:"athletes"`
}

// AthleteDirectoryMeta carries the upstream paging window plus the count
// remaining after the active-only filter.
type AthleteDirectoryMeta struct {
	Count         int `json:"count"`
	PageIndex     int `json:"pageIndex"`
	PageSize      int `json:"pageSize"`
	PageCount     int `json:"pageCount"`
	FilteredCount int `json:"filteredCount"`
}

type ListAthletesInput struct {
	Page       int
	Limit      int
	ActiveOnly bool
}

// AthleteService exposes the raw athlete directory, independent of the
// roster-derived snapshot.
type AthleteService struct {
	provider athleteProvider
}

func NewAthleteService(provider athleteProvider) *AthleteService {
	return &AthleteService{provider: provider}
}

// ListAthletes returns one directory page sorted by last name. With
// ActiveOnly set, entries that are inactive or missing either name part
// are dropped before sorting.
func (s *AthleteService) ListAthletes(ctx context.Context, input ListAthletesInput) (AthleteDirectory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.ListAthletes")
	defer span.End()

	if s.provider == nil {
		return AthleteDirectory{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	page, err := s.provider.ListAthletes(ctx, input.Page, input.Limit)
	if err != nil {
		return AthleteDirectory{}, fmt.Errorf("list athletes: %w", err)
	}

	items := page.Items
	if input.ActiveOnly {
		filtered := make([]espn.Athlete, 0, len(items))
		for _, athlete := range items {
			if !athlete.Active || athlete.FirstName == "" || athlete.LastName == "" {
				continue
			}
			filtered = append(filtered, athlete)
		}
		items = filtered
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return collator.CompareString(athleteSortKey(items[i]), athleteSortKey(items[j])) < 0
	})

	if items == nil {
		items = []espn.Athlete{}
	}

	return AthleteDirectory{
		Meta: AthleteDirectoryMeta{
			Count:         page.Count,
			PageIndex:     page.PageIndex,
			PageSize:      page.PageSize,
			PageCount:     page.PageCount,
			FilteredCount: len(items),
		},
		Athletes: items,
	}, nil
}

func athleteSortKey(athlete espn.Athlete) string {
	if athlete.LastName != "" {
		return athlete.LastName
	}
	return athlete.DisplayName
}
