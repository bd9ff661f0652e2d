package booking

import "time"

// Clock supplies the current time to the admission pipeline and the
// lifecycle sweep. Injecting it keeps every temporal rule
// deterministic under test; production code uses SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct{ T time.Time }

func (f FixedClock) Now() time.Time { return f.T }
