package player

import "time"

// CurrentSeason returns the NFL season year for the given instant. The
// league year rolls over in July, so January through June still count
// against the previous season.
func CurrentSeason(now time.Time) int {
	now = now.UTC()
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}
