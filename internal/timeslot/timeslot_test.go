package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_CountFollowsConstants(t *testing.T) {
	want := (LastStartMinutes-DayStartMinutes)/StepMinutes + 1
	slots := Generate()
	assert.Len(t, slots, want)
	assert.Equal(t, 31, want) // 09:00..19:00 every 20 minutes
}

func TestGenerate_AllSlotsValidAndRoundTrip(t *testing.T) {
	for _, slot := range Generate() {
		assert.True(t, IsValid(slot.Value), slot.Value)
		assert.Equal(t, DurationMinutes, slot.EndMinutes-slot.StartMinutes)

		start, end, ok := Parse(slot.Value)
		require.True(t, ok, slot.Value)
		assert.Equal(t, slot.StartMinutes, start)
		assert.Equal(t, slot.EndMinutes, end)
	}
}

func TestGenerate_BoundsAndOrder(t *testing.T) {
	slots := Generate()
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00-11:00", slots[0].Value)
	assert.Equal(t, "19:00-21:00", slots[len(slots)-1].Value)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, StepMinutes, slots[i].StartMinutes-slots[i-1].StartMinutes)
	}
}

func TestGenerate_Labels(t *testing.T) {
	labels := make(map[string]string)
	for _, slot := range Generate() {
		labels[slot.Value] = slot.Label
	}
	// Minutes are omitted when zero, rendered with a colon otherwise.
	assert.Equal(t, "9 AM - 11 AM", labels["09:00-11:00"])
	assert.Equal(t, "9:20 AM - 11:20 AM", labels["09:20-11:20"])
	assert.Equal(t, "11:40 AM - 1:40 PM", labels["11:40-13:40"])
	assert.Equal(t, "12 PM - 2 PM", labels["12:00-14:00"])
	assert.Equal(t, "7 PM - 9 PM", labels["19:00-21:00"])
}

func TestParse(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"09:00-11:00", 540, 660, true},
		{"19:00-21:00", 1140, 1260, true},
		{"00:00-23:59", 0, 1439, true},
		{"9:00-11:00", 0, 0, false},  // missing zero padding
		{"09:00 11:00", 0, 0, false}, // missing dash
		{"09:0a-11:00", 0, 0, false},
		{"24:00-26:00", 0, 0, false}, // hour out of range
		{"09:60-11:60", 0, 0, false}, // minute out of range
		{"garbage", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.start, start, tt.in)
			assert.Equal(t, tt.end, end, tt.in)
		}
	}
}

func TestIsValid_BoundaryRejection(t *testing.T) {
	assert.True(t, IsValid("09:00-11:00"))
	assert.True(t, IsValid("19:00-21:00"))

	assert.False(t, IsValid("19:20-21:20"), "start past 19:00")
	assert.False(t, IsValid("08:59-10:59"), "start before 09:00")
	assert.False(t, IsValid("09:00-10:30"), "wrong duration")
	assert.False(t, IsValid("09:00-12:00"), "over-long duration")
	assert.False(t, IsValid("nonsense"), "parse failure fails closed")
}

func TestOverlap(t *testing.T) {
	// Back-to-back slots share a boundary minute but not an interval.
	assert.False(t, Overlap("09:00-11:00", "11:00-13:00"))
	assert.True(t, Overlap("09:00-11:00", "10:59-12:59"))
	assert.True(t, Overlap("09:00-11:00", "09:00-11:00"))
	assert.True(t, Overlap("09:00-11:00", "08:00-09:01"))
	assert.False(t, Overlap("09:00-11:00", "13:00-15:00"))
}

func TestOverlap_Symmetry(t *testing.T) {
	values := []string{"09:00-11:00", "10:00-12:00", "11:00-13:00", "19:00-21:00"}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, Overlap(a, b), Overlap(b, a), "%s vs %s", a, b)
		}
	}
}

// Malformed operands report "no overlap". This is intentional source parity:
// the conflict checker validates its inputs before ever comparing them.
func TestOverlap_MalformedInputReportsNoOverlap(t *testing.T) {
	assert.False(t, Overlap("garbage", "09:00-11:00"))
	assert.False(t, Overlap("09:00-11:00", "garbage"))
	assert.False(t, Overlap("", ""))
}
