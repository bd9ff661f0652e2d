// Package booking contains the reservation admission core: time-of-day
// arithmetic, business-hours resolution, overlap detection, table
// assignment and the staged validation pipeline that commits bookings.
package booking

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/Camilo-marin10/restaurante/internal/model"
)

// ClockTime is a time of day expressed as minutes since midnight.
// Values may exceed 24h when they represent a derived end time that
// spills past midnight; comparisons still behave correctly because a
// closing time never exceeds 24:00.
type ClockTime int

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses a 24-hour "HH:MM" string into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	mi := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return ClockTime(h*60 + mi), nil
}

// ClockOf truncates a wall-clock instant to its minute of day.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// Add returns the clock time shifted forward by a number of minutes.
func (c ClockTime) Add(minutes int) ClockTime { return c + ClockTime(minutes) }

// String renders the clock time as "HH:MM". Times at or past midnight
// wrap for display (24:30 prints as 00:30) but keep their ordering for
// comparisons.
func (c ClockTime) String() string {
	h, m := int(c)/60%24, int(c)%60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Interval is a half-open time window [Start, End) within one calendar
// date. Adjacent intervals (one ending exactly when the next starts)
// do not overlap, so back-to-back bookings on the same table are legal.
type Interval struct {
	Start ClockTime
	End   ClockTime
}

// NewInterval builds the interval covered by a booking starting at
// start and lasting the given number of hours.
func NewInterval(start ClockTime, durationHours float64) Interval {
	return Interval{Start: start, End: start.Add(int(durationHours * 60))}
}

// Overlaps reports whether two half-open intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// reservationInterval derives the occupied window of a persisted
// reservation. Records always carry a validated "HH:MM" start, so a
// parse failure is treated as a zero-length window that conflicts with
// nothing.
func reservationInterval(r model.Reservation) Interval {
	start, err := ParseClock(r.Start)
	if err != nil {
		return Interval{}
	}
	return NewInterval(start, r.DurationHours)
}

// FindConflicts returns the reservations whose occupied window overlaps
// the candidate interval, excluding the reservation being edited.
// Callers pass reservations already filtered to one table, one date and
// the slot-occupying states. Results are ordered by start time
// ascending so the first element names the conflicting window in error
// messages.
func FindConflicts(existing []model.Reservation, candidate Interval, excludeID uint64) []model.Reservation {
	var conflicts []model.Reservation
	for _, r := range existing {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if candidate.Overlaps(reservationInterval(r)) {
			conflicts = append(conflicts, r)
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Start < conflicts[j].Start
	})
	return conflicts
}

var datePattern = regexp.MustCompile(`^([0-3][0-9])/([0-1][0-9])/(\d{4})$`)

// ParseDate normalizes a calendar date to ISO "2006-01-02". It accepts
// ISO 8601 input as well as the DD/MM/YYYY form used by the booking
// forms.
func ParseDate(s string) (string, error) {
	if m := datePattern.FindStringSubmatch(s); m != nil {
		s = m[3] + "-" + m[2] + "-" + m[1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return t.Format("2006-01-02"), nil
}

// Weekday returns the weekday index (0 = Sunday) of an ISO date.
func Weekday(isoDate string) (int, error) {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q", isoDate)
	}
	return int(t.Weekday()), nil
}
