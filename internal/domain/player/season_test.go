package player

import (
	"testing"
	"time"
)

func TestCurrentSeason(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "july starts the new season", now: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), want: 2025},
		{name: "june still belongs to the prior season", now: time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC), want: 2024},
		{name: "december mid season", now: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), want: 2025},
		{name: "rollover uses utc", now: time.Date(2025, time.July, 1, 3, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)), want: 2024},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := CurrentSeason(tc.now); got != tc.want {
				t.Fatalf("CurrentSeason(%v)=%d, want %d", tc.now, got, tc.want)
			}
		})
	}
}
