package usecase

import "strings"

// allowedPositions is the fantasy-relevant position set. Roster entries
// that normalize to anything else are excluded from snapshots.
var allowedPositions = []string{"QB", "RB", "WR", "TE", "K", "D/ST"}

const dstDisplayName = "Defense/Special Teams"

// normalizePosition maps a raw roster abbreviation onto the fantasy
// position set. PK collapses into K and DST into D/ST. When the
// abbreviation does not resolve, the display name is used as a fallback:
// defense units match by substring, everything else by prefix.
func normalizePosition(abbreviation, displayName string) (string, bool) {
	if abbreviation != "" {
		code := strings.ToUpper(abbreviation)
		switch code {
		case "PK":
			code = "K"
		case "DST":
			code = "D/ST"
		}
		for _, allowed := range allowedPositions {
			if code == allowed {
				return code, true
			}
		}
	}

	if displayName != "" {
		upper := strings.ToUpper(displayName)
		if strings.Contains(upper, strings.ToUpper(dstDisplayName)) {
			return "D/ST", true
		}
		for _, allowed := range allowedPositions {
			if strings.HasPrefix(upper, allowed) {
				return allowed, true
			}
		}
	}

	return "", false
}
