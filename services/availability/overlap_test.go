package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T, raw ...string) Schedule {
	t.Helper()
	s, err := ParseSchedule(raw)
	require.NoError(t, err)
	return s
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{"partial overlap", []string{"Mon 14:00-16:00"}, []string{"Mon 15:00-17:00"}, true},
		{"touching endpoints", []string{"Mon 14:00-16:00"}, []string{"Mon 16:00-18:00"}, false},
		{"different days", []string{"Mon 14:00-16:00"}, []string{"Tue 14:00-16:00"}, false},
		{"containment", []string{"Wed 08:00-20:00"}, []string{"Wed 10:00-11:00"}, true},
		{"second pair overlaps", []string{"Mon 08:00-09:00", "Fri 10:00-12:00"}, []string{"Fri 11:59-13:00"}, true},
		{"empty a", nil, []string{"Mon 14:00-16:00"}, false},
		{"empty b", []string{"Mon 14:00-16:00"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustSchedule(t, tt.a...)
			b := mustSchedule(t, tt.b...)
			assert.Equal(t, tt.want, HasOverlap(a, b))
			assert.Equal(t, tt.want, HasOverlap(b, a), "overlap must be symmetric")
		})
	}
}

func TestOverlapSlots(t *testing.T) {
	t.Run("single overlap", func(t *testing.T) {
		got := OverlapSlots(
			mustSchedule(t, "Mon 14:00-16:00"),
			mustSchedule(t, "Mon 15:00-17:00"),
		)
		require.Len(t, got, 1)
		assert.Equal(t, "Mon 15:00-16:00", got[0].String())
	})

	t.Run("a-major order without dedup", func(t *testing.T) {
		got := OverlapSlots(
			mustSchedule(t, "Mon 10:00-12:00", "Mon 10:00-12:00"),
			mustSchedule(t, "Mon 11:00-13:00", "Mon 09:00-10:30"),
		)
		require.Len(t, got, 4)
		assert.Equal(t, []string{
			"Mon 11:00-12:00", "Mon 10:00-10:30",
			"Mon 11:00-12:00", "Mon 10:00-10:30",
		}, Schedule(got).Strings())
	})

	t.Run("results are valid and contained in both inputs", func(t *testing.T) {
		a := mustSchedule(t, "Tue 09:00-17:00", "Thu 12:00-14:00")
		b := mustSchedule(t, "Tue 08:00-10:00", "Tue 16:30-18:00", "Thu 13:00-15:00")
		got := OverlapSlots(a, b)
		require.Len(t, got, 3)
		for _, s := range got {
			assert.Less(t, int(s.Start), int(s.End))
			assert.True(t, contained(s, a), "%s not within a", s)
			assert.True(t, contained(s, b), "%s not within b", s)
		}
	})

	t.Run("no overlap returns empty", func(t *testing.T) {
		got := OverlapSlots(mustSchedule(t, "Sat 10:00-11:00"), mustSchedule(t, "Sun 10:00-11:00"))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func contained(s Slot, sched Schedule) bool {
	for _, x := range sched {
		if x.Day == s.Day && x.Start <= s.Start && s.End <= x.End {
			return true
		}
	}
	return false
}
