package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

func TestParseClock(t *testing.T) {
	testCases := []struct {
		in        string
		expected  ClockTime
		expectErr bool
	}{
		{in: "00:00", expected: 0},
		{in: "10:00", expected: 600},
		{in: "13:30", expected: 810},
		{in: "23:59", expected: 1439},
		{in: "24:00", expectErr: true},
		{in: "9:00", expectErr: true},
		{in: "12:60", expectErr: true},
		{in: "12-30", expectErr: true},
		{in: "", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseClock(tc.in)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "13:30", ClockTime(810).String())
	assert.Equal(t, "00:00", ClockTime(0).String())
	// End times past midnight wrap for display but keep their ordering.
	late := ClockTime(23*60 + 30).Add(60)
	assert.Equal(t, "00:30", late.String())
	assert.True(t, late > ClockTime(22*60))
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		expected  string
		expectErr bool
	}{
		{name: "iso", in: "2025-06-02", expected: "2025-06-02"},
		{name: "form dd/mm/yyyy", in: "02/06/2025", expected: "2025-06-02"},
		{name: "nonexistent day", in: "2025-02-30", expectErr: true},
		{name: "garbage", in: "soon", expectErr: true},
		{name: "empty", in: "", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestWeekday(t *testing.T) {
	wd, err := Weekday("2025-06-01") // a Sunday
	require.NoError(t, err)
	assert.Equal(t, 0, wd)
	wd, err = Weekday("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 1, wd)
}

func TestIntervalOverlaps(t *testing.T) {
	mk := func(start string, hours float64) Interval {
		s, err := ParseClock(start)
		if err != nil {
			t.Fatalf("bad fixture time %q", start)
		}
		return NewInterval(s, hours)
	}
	testCases := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{name: "identical", a: mk("13:00", 2), b: mk("13:00", 2), overlaps: true},
		{name: "contained", a: mk("13:00", 2), b: mk("13:30", 1), overlaps: true},
		{name: "partial tail", a: mk("13:00", 2), b: mk("14:00", 2), overlaps: true},
		{name: "one minute shared", a: mk("13:00", 2), b: mk("14:59", 0.5), overlaps: true},
		{name: "back to back", a: mk("12:00", 2), b: mk("14:00", 1), overlaps: false},
		{name: "disjoint", a: mk("10:00", 1), b: mk("18:00", 1), overlaps: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// Overlap is symmetric by definition.
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []model.Reservation{
		{ID: 1, Start: "18:00", DurationHours: 2},
		{ID: 2, Start: "12:00", DurationHours: 2},
		{ID: 3, Start: "15:00", DurationHours: 1},
	}
	start, _ := ParseClock("11:00")
	candidate := NewInterval(start, 8) // 11:00 to 19:00

	conflicts := FindConflicts(existing, candidate, 0)
	require.Len(t, conflicts, 3)
	// Ordered by start time so the first entry names the earliest clash.
	assert.Equal(t, uint64(2), conflicts[0].ID)
	assert.Equal(t, uint64(3), conflicts[1].ID)
	assert.Equal(t, uint64(1), conflicts[2].ID)

	// The reservation under edit never conflicts with itself.
	conflicts = FindConflicts(existing, candidate, 2)
	require.Len(t, conflicts, 2)
	assert.Equal(t, uint64(3), conflicts[0].ID)

	// Adjacent bookings are not conflicts.
	short := NewInterval(mustClock(t, "14:00"), 1) // existing ID 2 ends 14:00
	assert.Empty(t, FindConflicts(existing[1:2], short, 0))
}

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}
