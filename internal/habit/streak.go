package habit

// Streaks derives the current and best completion streaks from the
// habit's history. Two completions chain when the later one is no more
// than one recurrence interval after the earlier one; unmarked entries
// count as absent.
func Streaks(h *Habit) (current, best int) {
	if h == nil || !h.Every.IsValid() {
		return 0, 0
	}

	days := h.History.Successes()
	if len(days) == 0 {
		return 0, 0
	}

	run := 1
	best = 1
	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1].Add(h.Every)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	// The current streak is whatever run the latest completion ends.
	return run, best
}
