package habit

import "lifequest/internal/dates"

// CouldBeCompletedOn reports whether day d is a valid day to complete
// the habit, judged as of "today" (supplied by the caller so the check
// stays deterministic under test).
//
// A day qualifies when the habit already existed, the day is not in
// the future, the recurrence-expected occurrence derived from the last
// completion on-or-before d has arrived, and d is not inside the
// window owned by a later completion. The last rule lets a user catch
// up a missed day without one future completion retro-validating
// several unrelated past days.
func CouldBeCompletedOn(h *Habit, d, today dates.Day) bool {
	if h == nil || d.IsZero() || today.IsZero() || h.CreatedAt.IsZero() {
		return false
	}
	if !h.Every.IsValid() {
		return false
	}
	if d.Before(h.CreatedAt) || d.After(today) {
		return false
	}

	if NextExpected(h, d).After(d) {
		return false
	}

	if boundary, ok := PreviousExpected(h, d); ok && d.After(boundary) {
		return false
	}
	return true
}

// NextExpected returns the next occurrence the recurrence expects,
// relative to d: one interval after the last completion on-or-before
// d, or the creation day itself when nothing has been completed yet
// (a fresh habit is immediately eligible).
func NextExpected(h *Habit, d dates.Day) dates.Day {
	if last, ok := h.History.LastSuccessOnOrBefore(d); ok {
		return last.Add(h.Every)
	}
	return h.CreatedAt
}

// PreviousExpected returns the occurrence immediately preceding the
// first completion strictly after d. Days after that boundary belong
// to the later completion and must not count independently.
func PreviousExpected(h *Habit, d dates.Day) (dates.Day, bool) {
	first, ok := h.History.FirstSuccessAfter(d)
	if !ok {
		return dates.Day{}, false
	}
	return first.Sub(h.Every), true
}
