package booking

import (
	"context"
	"log"
)

// Window is the open/close pair resolved for one calendar date.
type Window struct {
	Open  ClockTime
	Close ClockTime
}

// Contains reports whether the candidate interval fits entirely inside
// the window.
func (w Window) Contains(iv Interval) bool {
	return iv.Start >= w.Open && iv.End <= w.Close
}

// HoursResolver answers "when is the restaurant open on this date".
// Weekday rows are seeded once at startup (see the repository's
// EnsureDefaults), so a missing row here simply means closed.
type HoursResolver struct {
	store Store
}

func NewHoursResolver(store Store) *HoursResolver {
	return &HoursResolver{store: store}
}

// WindowFor resolves the open/close window for an ISO date. It returns
// ErrClosed when the weekday row is inactive or absent. An active row
// missing one of its bounds is malformed: it is reported as closed and
// the anomaly is logged rather than silently defaulted.
func (r *HoursResolver) WindowFor(ctx context.Context, isoDate string) (Window, error) {
	wd, err := Weekday(isoDate)
	if err != nil {
		return Window{}, err
	}
	return r.WindowForWeekday(ctx, wd)
}

// WindowForWeekday is WindowFor keyed directly by weekday index 0..6.
func (r *HoursResolver) WindowForWeekday(ctx context.Context, weekday int) (Window, error) {
	if weekday < 0 || weekday > 6 {
		return Window{}, ErrBadWeekday
	}
	row, err := r.store.HoursForWeekday(ctx, weekday)
	if err != nil {
		return Window{}, err
	}
	if row == nil || !row.IsActive {
		return Window{}, ErrClosed
	}
	if row.OpenTime == nil || row.CloseTime == nil {
		log.Printf("hours: weekday %d active but missing open/close, treating as closed", weekday)
		return Window{}, ErrClosed
	}
	open, err := ParseClock(*row.OpenTime)
	if err != nil {
		log.Printf("hours: weekday %d has malformed open time %q, treating as closed", weekday, *row.OpenTime)
		return Window{}, ErrClosed
	}
	close, err := ParseClock(*row.CloseTime)
	if err != nil {
		log.Printf("hours: weekday %d has malformed close time %q, treating as closed", weekday, *row.CloseTime)
		return Window{}, ErrClosed
	}
	return Window{Open: open, Close: close}, nil
}
