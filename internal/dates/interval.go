package dates

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a recurrence unit.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return true
	default:
		return false
	}
}

// Interval is a recurrence rule: every Count Units.
type Interval struct {
	Count int  `yaml:"count"`
	Unit  Unit `yaml:"unit"`
}

func (iv Interval) IsValid() bool {
	return iv.Count >= 1 && iv.Unit.IsValid()
}

func (iv Interval) String() string {
	if iv.Count == 1 {
		switch iv.Unit {
		case UnitDays:
			return "daily"
		case UnitWeeks:
			return "weekly"
		case UnitMonths:
			return "monthly"
		case UnitYears:
			return "yearly"
		}
	}
	return fmt.Sprintf("every %d %s", iv.Count, iv.Unit)
}

// ParseInterval parses user input like "daily", "weekly", "3d", "2w",
// "1m", "1y" into an Interval.
func ParseInterval(input string) (Interval, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "daily":
		return Interval{Count: 1, Unit: UnitDays}, nil
	case "weekly":
		return Interval{Count: 1, Unit: UnitWeeks}, nil
	case "monthly":
		return Interval{Count: 1, Unit: UnitMonths}, nil
	case "yearly", "annually":
		return Interval{Count: 1, Unit: UnitYears}, nil
	}

	if len(s) < 2 {
		return Interval{}, fmt.Errorf("invalid interval: %q", input)
	}
	count, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || count < 1 {
		return Interval{}, fmt.Errorf("invalid interval: %q", input)
	}
	var unit Unit
	switch s[len(s)-1] {
	case 'd':
		unit = UnitDays
	case 'w':
		unit = UnitWeeks
	case 'm':
		unit = UnitMonths
	case 'y':
		unit = UnitYears
	default:
		return Interval{}, fmt.Errorf("invalid interval unit in %q (want d|w|m|y)", input)
	}
	return Interval{Count: count, Unit: unit}, nil
}

// Add returns the day one interval after d. Weeks are 7-day blocks;
// months and years clamp the day-of-month to the target month length.
func (d Day) Add(iv Interval) Day {
	switch iv.Unit {
	case UnitWeeks:
		return d.AddDays(iv.Count * 7)
	case UnitMonths:
		return d.addMonths(iv.Count)
	case UnitYears:
		return d.addMonths(iv.Count * 12)
	default:
		return d.AddDays(iv.Count)
	}
}

// Sub returns the day one interval before d.
func (d Day) Sub(iv Interval) Day {
	switch iv.Unit {
	case UnitWeeks:
		return d.AddDays(-iv.Count * 7)
	case UnitMonths:
		return d.addMonths(-iv.Count)
	case UnitYears:
		return d.addMonths(-iv.Count * 12)
	default:
		return d.AddDays(-iv.Count)
	}
}
