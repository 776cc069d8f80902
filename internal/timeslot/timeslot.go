// Package timeslot defines the legal universe of bookable class slots and
// the arithmetic over them. A slot is canonically a "HH:MM-HH:MM" string
// (24-hour, zero-padded); all comparisons are done in integer minutes since
// midnight. Times are local wall-clock values, no timezone handling.
package timeslot

import "fmt"

// Business-hour window and class shape. Generate and IsValid both derive
// from these constants, never from hardcoded slot lists.
const (
	DayStartMinutes  = 9 * 60  // first bookable start, 09:00
	LastStartMinutes = 19 * 60 // last bookable start, 19:00
	DayEndMinutes    = 21 * 60 // no class may end after 21:00
	StepMinutes      = 20      // start times advance in 20-minute increments
	DurationMinutes  = 120     // fixed 2-hour class duration
)

// Slot is one bookable window. Value is the canonical wire form, Label the
// human-readable 12-hour form used to populate pickers.
type Slot struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	StartMinutes int    `json:"start_minutes"`
	EndMinutes   int    `json:"end_minutes"`
}

// Generate returns every legal slot for one scheduling day, ordered by
// start time. The count follows from the constants above.
func Generate() []Slot {
	var slots []Slot
	for start := DayStartMinutes; start <= LastStartMinutes; start += StepMinutes {
		end := start + DurationMinutes
		slots = append(slots, Slot{
			Value:        fmt.Sprintf("%s-%s", formatMinutes(start), formatMinutes(end)),
			Label:        fmt.Sprintf("%s - %s", formatLabel(start), formatLabel(end)),
			StartMinutes: start,
			EndMinutes:   end,
		})
	}
	return slots
}

// Parse extracts start and end minutes from a canonical slot string. It
// accepts only the exact "HH:MM-HH:MM" shape and reports anything else via
// ok=false; callers must treat that as "invalid, do not proceed".
func Parse(s string) (startMinutes, endMinutes int, ok bool) {
	if len(s) != 11 || s[5] != '-' {
		return 0, 0, false
	}
	start, ok := parseClock(s[:5])
	if !ok {
		return 0, 0, false
	}
	end, ok := parseClock(s[6:])
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// IsValid reports whether s is a legal bookable slot: parseable, start
// within the business window, exactly DurationMinutes long and ending by
// DayEndMinutes. Fails closed on any parse failure.
func IsValid(s string) bool {
	start, end, ok := Parse(s)
	if !ok {
		return false
	}
	if start < DayStartMinutes || start > LastStartMinutes {
		return false
	}
	if end-start != DurationMinutes {
		return false
	}
	return end <= DayEndMinutes
}

// Overlap reports whether two slot strings occupy any common minute.
// Intervals are half-open, so back-to-back slots do not overlap. A slot
// that fails to parse compares as non-overlapping; callers that care about
// malformed input must run IsValid first.
func Overlap(a, b string) bool {
	aStart, aEnd, ok := Parse(a)
	if !ok {
		return false
	}
	bStart, bEnd, ok := Parse(b)
	if !ok {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// parseClock reads a zero-padded "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// formatLabel renders minutes-since-midnight as a 12-hour label. The
// minutes component is omitted when zero: "9 AM", "9:20 AM", "12 PM".
func formatLabel(m int) string {
	hour := m / 60
	minute := m % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%d %s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}
