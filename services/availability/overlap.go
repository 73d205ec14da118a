package availability

// Overlaps reports whether two slots share a positive-length interval on the
// same day. Touching endpoints do not overlap.
func Overlaps(a, b Slot) bool {
	if a.Day != b.Day {
		return false
	}
	return maxTime(a.Start, b.Start) < minTime(a.End, b.End)
}

// HasOverlap reports whether any slot in a overlaps any slot in b.
func HasOverlap(a, b Schedule) bool {
	for _, sa := range a {
		for _, sb := range b {
			if Overlaps(sa, sb) {
				return true
			}
		}
	}
	return false
}

// OverlapSlots returns every overlapping sub-interval, a-major then b-minor.
// Duplicates are kept.
func OverlapSlots(a, b Schedule) []Slot {
	out := []Slot{}
	for _, sa := range a {
		for _, sb := range b {
			if !Overlaps(sa, sb) {
				continue
			}
			out = append(out, Slot{
				Day:   sa.Day,
				Start: maxTime(sa.Start, sb.Start),
				End:   minTime(sa.End, sb.End),
			})
		}
	}
	return out
}

func maxTime(a, b TimeOfDay) TimeOfDay {
	if a > b {
		return a
	}
	return b
}

func minTime(a, b TimeOfDay) TimeOfDay {
	if a < b {
		return a
	}
	return b
}
