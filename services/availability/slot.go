package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedSlot is returned when a textual slot does not parse.
var ErrMalformedSlot = errors.New("malformed availability slot")

// Day is a day of the week, Monday first.
type Day int

const (
	Mon Day = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var dayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Day) String() string {
	if d < Mon || d > Sun {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay maps a three-letter day token to a Day.
func ParseDay(s string) (Day, bool) {
	for i, name := range dayNames {
		if name == s {
			return Day(i), true
		}
	}
	return 0, false
}

// TimeOfDay is minutes since midnight.
type TimeOfDay int

// String renders the time as zero-padded HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func parseTimeOfDay(hh, mm string) (TimeOfDay, bool) {
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return TimeOfDay(h*60 + m), true
}

// Slot is a weekly recurring interval [Start, End) on Day.
type Slot struct {
	Day   Day
	Start TimeOfDay
	End   TimeOfDay
}

var slotPattern = regexp.MustCompile(`^([A-Za-z]{3}) (\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// ParseSlot parses the textual form "Mon 14:00-16:00".
func ParseSlot(s string) (Slot, error) {
	m := slotPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Slot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, s)
	}
	day, ok := ParseDay(m[1])
	if !ok {
		return Slot{}, fmt.Errorf("%w: unknown day in %q", ErrMalformedSlot, s)
	}
	start, ok := parseTimeOfDay(m[2], m[3])
	if !ok {
		return Slot{}, fmt.Errorf("%w: invalid start time in %q", ErrMalformedSlot, s)
	}
	end, ok := parseTimeOfDay(m[4], m[5])
	if !ok {
		return Slot{}, fmt.Errorf("%w: invalid end time in %q", ErrMalformedSlot, s)
	}
	if start >= end {
		return Slot{}, fmt.Errorf("%w: start must be before end in %q", ErrMalformedSlot, s)
	}
	return Slot{Day: day, Start: start, End: end}, nil
}

// String renders the slot back to its textual form.
func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
}

type slotJSON struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotJSON{Day: s.Day.String(), Start: s.Start.String(), End: s.End.String()})
}

func (s *Slot) UnmarshalJSON(b []byte) error {
	var raw slotJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSlot(fmt.Sprintf("%s %s-%s", raw.Day, raw.Start, raw.End))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Schedule is a user's or session's list of weekly slots.
type Schedule []Slot

// ParseSchedule parses every entry, failing on the first malformed one.
func ParseSchedule(raw []string) (Schedule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(Schedule, 0, len(raw))
	for _, r := range raw {
		slot, err := ParseSlot(r)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, nil
}

// Strings renders the schedule in its stored textual form.
func (s Schedule) Strings() []string {
	out := make([]string, len(s))
	for i, slot := range s {
		out[i] = slot.String()
	}
	return out
}
