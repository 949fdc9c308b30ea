package availability

import (
	"math"
	"time"
)

// Day is a calendar day with no time-of-day or timezone attached.
// Bookings block whole days, so all exclusion and overlap math runs on
// Day values rather than instants; this keeps midnight/DST boundaries
// out of the comparisons.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf truncates an instant to its calendar day.
func DayOf(t time.Time) Day {
	return Day{Year: t.Year(), Month: t.Month(), Date: t.Day()}
}

// Time returns the day as midnight UTC.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC)
}

func (d Day) Next() Day {
	return DayOf(d.Time().AddDate(0, 0, 1))
}

func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

func (d Day) After(other Day) bool {
	return d.Time().After(other.Time())
}

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

// Range is one existing booking's occupied days, inclusive on both ends.
type Range struct {
	Start Day
	End   Day
}

// RangeOf builds a Range from booking timestamps.
func RangeOf(from, to time.Time) Range {
	return Range{Start: DayOf(from), End: DayOf(to)}
}

// ExcludedDays expands booked ranges into the set of individual days a
// date picker must disable. The union is order-independent and days
// covered by more than one range collapse. A range with Start after End
// contributes nothing; that is bad stored data, not an error here.
func ExcludedDays(ranges []Range) map[Day]struct{} {
	out := make(map[Day]struct{})
	for _, r := range ranges {
		for d := r.Start; !d.After(r.End); d = d.Next() {
			out[d] = struct{}{}
		}
	}
	return out
}

// IsExcluded reports whether the instant falls on an excluded day.
// Comparison is day-level; time-of-day is ignored.
func IsExcluded(t time.Time, excluded map[Day]struct{}) bool {
	_, ok := excluded[DayOf(t)]
	return ok
}

// Overlaps reports whether the closed interval [from, to] intersects any
// existing range, at day granularity. This is the pre-submit guard: the
// picker already refuses excluded endpoints, but a from/to pair can still
// span a booked range without either endpoint landing on it.
func Overlaps(from, to time.Time, ranges []Range) bool {
	f, t := DayOf(from), DayOf(to)
	for _, r := range ranges {
		if !f.After(r.End) && !t.Before(r.Start) {
			return true
		}
	}
	return false
}

// Nights returns the number of nights between two instants, ceil'd to
// whole nights. Zero when either side is unset or the instants are equal.
// Callers must validate from < to; a negative span is not guarded here.
func Nights(from, to time.Time) int {
	if from.IsZero() || to.IsZero() || from.Equal(to) {
		return 0
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// TotalPrice is nights * pricePerNight. Callers compute it once and use
// the same value for display and submission.
func TotalPrice(nights int, pricePerNight float64) float64 {
	return float64(nights) * pricePerNight
}
