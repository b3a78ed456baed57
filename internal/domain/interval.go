package domain

import "time"

// Interval is a half-open time span [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if End is strictly after Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether [a,b) and [c,d) intersect: a < d AND c < b.
// Adjacent intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
