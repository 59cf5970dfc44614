package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTimeStripsTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 6, 30, 0, 0, time.Local)
	night := time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local)

	assert.True(t, FromTime(morning).Equal(FromTime(night)))
	assert.Equal(t, "2024-03-15", FromTime(morning).Key())
}

func TestParseRejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-01", "2024-02-30", "15/03/2024"} {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	d := MustParse("2024-02-29")
	back, err := Parse(d.Key())
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestCompare(t *testing.T) {
	a := MustParse("2024-01-01")
	b := MustParse("2024-01-02")

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
}

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want Interval
		ok   bool
	}{
		{"daily", Interval{1, UnitDays}, true},
		{"weekly", Interval{1, UnitWeeks}, true},
		{"monthly", Interval{1, UnitMonths}, true},
		{"yearly", Interval{1, UnitYears}, true},
		{"3d", Interval{3, UnitDays}, true},
		{"2w", Interval{2, UnitWeeks}, true},
		{"6m", Interval{6, UnitMonths}, true},
		{"1y", Interval{1, UnitYears}, true},
		{" 10D ", Interval{10, UnitDays}, true},
		{"0d", Interval{}, false},
		{"d", Interval{}, false},
		{"3x", Interval{}, false},
		{"", Interval{}, false},
	}
	for _, tc := range cases {
		got, err := ParseInterval(tc.in)
		if !tc.ok {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestAddInterval(t *testing.T) {
	cases := []struct {
		start string
		iv    Interval
		want  string
	}{
		{"2024-01-10", Interval{3, UnitDays}, "2024-01-13"},
		{"2024-01-29", Interval{1, UnitWeeks}, "2024-02-05"},
		{"2024-01-31", Interval{1, UnitMonths}, "2024-02-29"}, // leap year clamp
		{"2023-01-31", Interval{1, UnitMonths}, "2023-02-28"},
		{"2023-11-30", Interval{3, UnitMonths}, "2024-02-29"},
		{"2024-02-29", Interval{1, UnitYears}, "2025-02-28"},
		{"2023-12-31", Interval{1, UnitDays}, "2024-01-01"},
	}
	for _, tc := range cases {
		got := MustParse(tc.start).Add(tc.iv)
		assert.Equal(t, tc.want, got.Key(), "%s + %v", tc.start, tc.iv)
	}
}

func TestSubInterval(t *testing.T) {
	cases := []struct {
		start string
		iv    Interval
		want  string
	}{
		{"2024-01-13", Interval{3, UnitDays}, "2024-01-10"},
		{"2024-02-05", Interval{1, UnitWeeks}, "2024-01-29"},
		{"2024-03-31", Interval{1, UnitMonths}, "2024-02-29"},
		{"2024-01-01", Interval{1, UnitDays}, "2023-12-31"},
		{"2025-02-28", Interval{2, UnitYears}, "2023-02-28"},
	}
	for _, tc := range cases {
		got := MustParse(tc.start).Sub(tc.iv)
		assert.Equal(t, tc.want, got.Key(), "%s - %v", tc.start, tc.iv)
	}
}

func TestIntervalString(t *testing.T) {
	assert.Equal(t, "daily", Interval{1, UnitDays}.String())
	assert.Equal(t, "weekly", Interval{1, UnitWeeks}.String())
	assert.Equal(t, "every 3 days", Interval{3, UnitDays}.String())
}
