package matching

import (
	"fmt"

	"studybuddy/models"
	"studybuddy/services/availability"
)

const (
	majorWeight      = 30
	preferenceWeight = 10
	overlapWeight    = 20
	maxScore         = 100
)

// Profile is the scoring view of a stored user.
type Profile struct {
	ID           string
	Major        string
	Preferences  map[string]struct{}
	Availability availability.Schedule
}

// ProfileFromUser parses a stored profile. Malformed availability is
// reported as availability.ErrMalformedSlot rather than read as "no overlap".
func ProfileFromUser(u models.User) (Profile, error) {
	sched, err := availability.ParseSchedule(u.Availability)
	if err != nil {
		return Profile{}, fmt.Errorf("user %s: %w", u.UID, err)
	}
	p := profileWithoutAvailability(u)
	p.Availability = sched
	return p, nil
}

// profileWithoutAvailability keeps major and preferences only; it scores
// without an overlap bonus.
func profileWithoutAvailability(u models.User) Profile {
	prefs := make(map[string]struct{}, len(u.StudyPreferences))
	for _, p := range u.StudyPreferences {
		if p != "" {
			prefs[p] = struct{}{}
		}
	}
	return Profile{ID: u.UID, Major: u.Major, Preferences: prefs}
}

// Score computes the compatibility of two profiles in [0, 100]. It is
// symmetric: +30 for the same major, +10 per distinct shared preference and
// +20 when availability overlaps.
func Score(a, b Profile) int {
	score := 0
	if a.Major == b.Major {
		score += majorWeight
	}
	for p := range a.Preferences {
		if _, ok := b.Preferences[p]; ok {
			score += preferenceWeight
		}
	}
	if availability.HasOverlap(a.Availability, b.Availability) {
		score += overlapWeight
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// CanonicalMatchID derives the pair key: smaller id, "_", larger id.
func CanonicalMatchID(a, b string) string {
	pair := canonicalPair(a, b)
	return pair[0] + "_" + pair[1]
}

func canonicalPair(a, b string) []string {
	if b < a {
		a, b = b, a
	}
	return []string{a, b}
}
