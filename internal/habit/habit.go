// Package habit holds the recurring-habit model and the pure logic
// deciding, for any calendar day, whether a habit could be completed
// on that day given its recurrence rule and completion history.
package habit

import (
	"errors"
	"fmt"
	"sort"

	"lifequest/internal/dates"
)

// Entry records one user action for one calendar day: a completion, or
// an explicit unmark (Success=false).
type Entry struct {
	Day     dates.Day
	Success bool
}

// History maps dates.Day.Key() to the single entry for that day.
// Keying by day enforces the one-entry-per-day invariant structurally;
// Mark overwrites rather than appending.
type History map[string]Entry

// Mark records the action for a day, replacing any earlier entry.
func (h History) Mark(d dates.Day, success bool) {
	h[d.Key()] = Entry{Day: d, Success: success}
}

// On returns the entry for a day, if any.
func (h History) On(d dates.Day) (Entry, bool) {
	e, ok := h[d.Key()]
	return e, ok
}

// CompletedOn reports whether the day holds a successful entry.
func (h History) CompletedOn(d dates.Day) bool {
	e, ok := h.On(d)
	return ok && e.Success
}

// LastSuccessOnOrBefore returns the most recent successful entry day
// that is on or before d.
func (h History) LastSuccessOnOrBefore(d dates.Day) (dates.Day, bool) {
	var best dates.Day
	found := false
	for _, e := range h {
		if !e.Success || e.Day.After(d) {
			continue
		}
		if !found || e.Day.After(best) {
			best = e.Day
			found = true
		}
	}
	return best, found
}

// FirstSuccessAfter returns the earliest successful entry day strictly
// after d.
func (h History) FirstSuccessAfter(d dates.Day) (dates.Day, bool) {
	var best dates.Day
	found := false
	for _, e := range h {
		if !e.Success || !e.Day.After(d) {
			continue
		}
		if !found || e.Day.Before(best) {
			best = e.Day
			found = true
		}
	}
	return best, found
}

// Successes returns all successful entry days in ascending order.
func (h History) Successes() []dates.Day {
	days := make([]dates.Day, 0, len(h))
	for _, e := range h {
		if e.Success {
			days = append(days, e.Day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Habit is a recurring activity tracked through a per-day history.
type Habit struct {
	ID        string
	Title     string
	CreatedAt dates.Day
	Every     dates.Interval
	History   History
	XPReward  int
	Archived  bool
}

func New(id, title string, createdAt dates.Day, every dates.Interval, xpReward int) *Habit {
	return &Habit{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt,
		Every:     every,
		History:   History{},
		XPReward:  xpReward,
	}
}

func (h *Habit) Validate() error {
	if h.ID == "" {
		return errors.New("habit id is required")
	}
	if h.Title == "" {
		return errors.New("habit title is required")
	}
	if h.CreatedAt.IsZero() {
		return errors.New("habit creation date is required")
	}
	if !h.Every.IsValid() {
		return fmt.Errorf("invalid recurrence: %+v", h.Every)
	}
	return nil
}
