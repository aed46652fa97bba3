package domain

import "time"

// Interval represents a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval from start and end timestamps
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsOrdered returns true if Start is strictly before End
func (i Interval) IsOrdered() bool {
	return i.Start.Before(i.End)
}

// IsHourAligned returns true if both boundaries fall exactly on the top of an hour
func (i Interval) IsHourAligned() bool {
	return isTopOfHour(i.Start) && isTopOfHour(i.End)
}

// Overlaps reports whether two half-open intervals intersect.
// Boundary touches do not overlap: [9:00, 10:00) and [10:00, 11:00) are disjoint.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether t falls inside the interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func isTopOfHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
