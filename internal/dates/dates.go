// Package dates provides local calendar-day values and the interval
// arithmetic habits are scheduled with. A Day has no time-of-day
// component: two timestamps on the same local day are equal.
package dates

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical YYYY-MM-DD form used for persistence and
// as the one-entry-per-day dedup key.
const KeyLayout = "2006-01-02"

// Day is a single calendar day in the local time zone.
// The zero value is not a valid day; check IsZero.
type Day struct {
	t time.Time
}

// FromTime truncates t to its local calendar day.
func FromTime(t time.Time) Day {
	lt := t.Local()
	y, m, d := lt.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, lt.Location())}
}

// Parse parses a YYYY-MM-DD string as a local calendar day.
// Invalid input is an error, never coerced to the zero day.
func Parse(s string) (Day, error) {
	t, err := time.ParseInLocation(KeyLayout, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{t}, nil
}

// MustParse is a test/fixture helper; it panics on invalid input.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) IsZero() bool { return d.t.IsZero() }

// Key returns the canonical YYYY-MM-DD form.
func (d Day) Key() string { return d.t.Format(KeyLayout) }

func (d Day) String() string { return d.Key() }

// Time returns the day as local midnight.
func (d Day) Time() time.Time { return d.t }

func (d Day) Year() int        { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) DayOfMonth() int  { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// Compare returns -1 if d is before o, 0 if same day, +1 if after.
func Compare(d, o Day) int {
	switch {
	case d.Before(o):
		return -1
	case d.After(o):
		return 1
	default:
		return 0
	}
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return FromTime(d.t.AddDate(0, 0, n))
}

// addMonths shifts by whole calendar months, clamping the day-of-month
// to the target month's length (Jan 31 + 1 month = Feb 28/29).
func (d Day) addMonths(n int) Day {
	y, m, dom := d.t.Date()
	total := int(m) - 1 + n
	yOff := total / 12
	mRem := total % 12
	if mRem < 0 {
		mRem += 12
		yOff--
	}
	y += yOff
	month := time.Month(mRem + 1)
	if max := daysInMonth(y, month); dom > max {
		dom = max
	}
	return Day{time.Date(y, month, dom, 0, 0, 0, 0, d.t.Location())}
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
