package clock

import "time"

// Clock provides the current time. Services take a Clock instead of calling
// time.Now directly so tests can simulate day boundaries and the absence
// sweeper can run against a consistent date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NewSystemClock returns a Clock backed by the system wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant. Useful in tests.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// DateString formats t as the canonical YYYY-MM-DD calendar date in UTC.
// Attendance records are keyed on this fixed-width form so lexicographic
// comparisons equal chronological ones.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
