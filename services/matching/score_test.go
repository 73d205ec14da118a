package matching

import (
	"testing"

	"studybuddy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(t *testing.T, u models.User) Profile {
	t.Helper()
	p, err := ProfileFromUser(u)
	require.NoError(t, err)
	return p
}

func TestScore(t *testing.T) {
	alice := profile(t, models.User{UID: "alice", Major: "CS", StudyPreferences: []string{"quiet", "group"},
		Availability: []string{"Mon 14:00-16:00", "Wed 10:00-12:00"}})
	bob := profile(t, models.User{UID: "bob", Major: "CS", StudyPreferences: []string{"group"},
		Availability: []string{"Mon 15:00-17:00", "Thu 09:00-11:00"}})
	charlie := profile(t, models.User{UID: "charlie", Major: "Math", StudyPreferences: []string{"quiet"},
		Availability: []string{"Tue 10:00-12:00", "Wed 14:00-16:00"}})
	dana := profile(t, models.User{UID: "dana", Major: "History", StudyPreferences: []string{"online"},
		Availability: []string{"Sun 18:00-20:00"}})

	tests := []struct {
		name string
		a, b Profile
		want int
	}{
		{"major, one preference and overlap", alice, bob, 60},
		{"one shared preference only", alice, charlie, 10},
		{"nothing in common", alice, dana, 0},
		{"same major without overlap", bob, profile(t, models.User{UID: "x", Major: "CS"}), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.a, tt.b))
			assert.Equal(t, tt.want, Score(tt.b, tt.a))
		})
	}
}

func TestScoreClampsAtHundred(t *testing.T) {
	prefs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	a := profile(t, models.User{UID: "a", Major: "CS", StudyPreferences: prefs, Availability: []string{"Fri 08:00-18:00"}})
	b := profile(t, models.User{UID: "b", Major: "CS", StudyPreferences: prefs, Availability: []string{"Fri 09:00-10:00"}})
	assert.Equal(t, 100, Score(a, b))
}

func TestScoreCountsDistinctPreferences(t *testing.T) {
	a := profile(t, models.User{UID: "a", Major: "CS", StudyPreferences: []string{"quiet", "quiet", "quiet"}})
	b := profile(t, models.User{UID: "b", Major: "Art", StudyPreferences: []string{"quiet", "quiet"}})
	assert.Equal(t, 10, Score(a, b))
}

func TestScoreEmptyMajorsAreEqual(t *testing.T) {
	a := profile(t, models.User{UID: "a"})
	b := profile(t, models.User{UID: "b"})
	assert.Equal(t, 30, Score(a, b))
	assert.Equal(t, 0, Score(a, profile(t, models.User{UID: "c", Major: "CS"})))
}

func TestScoreMajorIsCaseSensitive(t *testing.T) {
	a := profile(t, models.User{UID: "a", Major: "CS"})
	b := profile(t, models.User{UID: "b", Major: "cs"})
	assert.Equal(t, 0, Score(a, b))
}

func TestProfileFromUserRejectsMalformedAvailability(t *testing.T) {
	_, err := ProfileFromUser(models.User{UID: "a", Availability: []string{"Someday 10:00-11:00"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed availability slot")
}

func TestCanonicalMatchID(t *testing.T) {
	assert.Equal(t, "alice_bob", CanonicalMatchID("bob", "alice"))
	assert.Equal(t, CanonicalMatchID("u1", "u2"), CanonicalMatchID("u2", "u1"))
}
