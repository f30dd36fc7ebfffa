package espn

// Payload structs mirror the provider responses field for field. Only the
// parts the service reads are declared; unknown fields are ignored on
// decode.

type Image struct {
	Href        string   `json:"href"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Alt         string   `json:"alt,omitempty"`
	Rel         []string `json:"rel,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
}

type Link struct {
	Rel       []string `json:"rel,omitempty"`
	Href      string   `json:"href"`
	Text      string   `json:"text,omitempty"`
	ShortText string   `json:"shortText,omitempty"`
}

type Team struct {
	ID               string  `json:"id"`
	UID              string  `json:"uid,omitempty"`
	Slug             string  `json:"slug,omitempty"`
	Abbreviation     string  `json:"abbreviation,omitempty"`
	DisplayName      string  `json:"displayName"`
	ShortDisplayName string  `json:"shortDisplayName,omitempty"`
	Name             string  `json:"name,omitempty"`
	Nickname         string  `json:"nickname,omitempty"`
	Location         string  `json:"location,omitempty"`
	Color            string  `json:"color,omitempty"`
	AlternateColor   string  `json:"alternateColor,omitempty"`
	IsActive         bool    `json:"isActive,omitempty"`
	Logos            []Image `json:"logos,omitempty"`
	Links            []Link  `json:"links,omitempty"`
}

type teamListResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team Team `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type RecordStat struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"displayName,omitempty"`
	Abbreviation string  `json:"abbreviation,omitempty"`
	Type         string  `json:"type,omitempty"`
	Value        float64 `json:"value,omitempty"`
	DisplayValue string  `json:"displayValue,omitempty"`
}

type TeamProfile struct {
	Team struct {
		Team
		StandingSummary string `json:"standingSummary,omitempty"`
		Record          *struct {
			Items []struct {
				Type        string       `json:"type"`
				Description string       `json:"description,omitempty"`
				Summary     string       `json:"summary"`
				Stats       []RecordStat `json:"stats"`
			} `json:"items"`
		} `json:"record,omitempty"`
	} `json:"team"`
}

type RosterTeam struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Location     string `json:"location,omitempty"`
	Name         string `json:"name,omitempty"`
}

type RosterPosition struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

type RosterStatus struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type RosterAthlete struct {
	ID          string          `json:"id"`
	UID         string          `json:"uid,omitempty"`
	FullName    string          `json:"fullName,omitempty"`
	DisplayName string          `json:"displayName"`
	ShortName   string          `json:"shortName,omitempty"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Jersey      string          `json:"jersey,omitempty"`
	Position    *RosterPosition `json:"position,omitempty"`
	Status      *RosterStatus   `json:"status,omitempty"`
	Headshot    *Image          `json:"headshot,omitempty"`
}

type RosterGroup struct {
	Position string          `json:"position"`
	Items    []RosterAthlete `json:"items"`
}

type TeamRoster struct {
	Team   RosterTeam `json:"team"`
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Athletes []RosterGroup `json:"athletes"`
}

type ScheduleCompetitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Team     struct {
		ID           string `json:"id"`
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation,omitempty"`
	} `json:"team"`
	Score *struct {
		DisplayValue string `json:"displayValue,omitempty"`
	} `json:"score,omitempty"`
	Winner bool `json:"winner,omitempty"`
}

type ScheduleCompetition struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Venue *struct {
		FullName string `json:"fullName,omitempty"`
	} `json:"venue,omitempty"`
	Status struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"status"`
	Competitors []ScheduleCompetitor `json:"competitors"`
}

type ScheduleEvent struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
	Week      *struct {
		Number int    `json:"number"`
		Text   string `json:"text,omitempty"`
	} `json:"week,omitempty"`
	Competitions []ScheduleCompetition `json:"competitions"`
}

type TeamSchedule struct {
	Team struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	ByeWeek int             `json:"byeWeek,omitempty"`
	Events  []ScheduleEvent `json:"events"`
}

type TeamStatValue struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"displayName,omitempty"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue,omitempty"`
	PerGameValue float64 `json:"perGameValue,omitempty"`
	Rank         int     `json:"rank,omitempty"`
}

type TeamStatCategory struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName,omitempty"`
	Stats       []TeamStatValue `json:"stats"`
}

type TeamStatistics struct {
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	SeasonType struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"seasonType"`
	Splits struct {
		ID           string             `json:"id"`
		Name         string             `json:"name"`
		Abbreviation string             `json:"abbreviation,omitempty"`
		Categories   []TeamStatCategory `json:"categories"`
	} `json:"splits"`
}

type TeamRecord struct {
	Items []struct {
		ID           string       `json:"id,omitempty"`
		Name         string       `json:"name,omitempty"`
		Abbreviation string       `json:"abbreviation,omitempty"`
		Type         string       `json:"type"`
		Summary      string       `json:"summary"`
		DisplayValue string       `json:"displayValue,omitempty"`
		Value        float64      `json:"value,omitempty"`
		Stats        []RecordStat `json:"stats"`
	} `json:"items"`
}

type Athlete struct {
	ID          string `json:"id"`
	UID         string `json:"uid,omitempty"`
	GUID        string `json:"guid,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName,omitempty"`
	Jersey      string `json:"jersey,omitempty"`
	Active      bool   `json:"active,omitempty"`
	Age         int    `json:"age,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	Height      float64 `json:"height,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type AthletesPage struct {
	Count     int       `json:"count"`
	PageIndex int       `json:"pageIndex"`
	PageSize  int       `json:"pageSize"`
	PageCount int       `json:"pageCount"`
	Items     []Athlete `json:"items"`
}

// AthleteStatRow is one per-season, per-team row of a stat category. The
// Stats slice is positional: each index carries a string-encoded number
// whose meaning depends on the category.
type StatSeason struct {
	Year int `json:"year,omitempty"`
}

type AthleteStatRow struct {
	TeamID   string      `json:"teamId,omitempty"`
	TeamSlug string      `json:"teamSlug,omitempty"`
	Season   *StatSeason `json:"season,omitempty"`
	Stats    []string    `json:"stats"`
}

type AthleteStatCategory struct {
	Name       string           `json:"name"`
	Statistics []AthleteStatRow `json:"statistics,omitempty"`
}

type AthleteStats struct {
	Categories []AthleteStatCategory `json:"categories,omitempty"`
}
