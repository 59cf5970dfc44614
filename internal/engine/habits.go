package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lifequest/internal/dates"
	"lifequest/internal/habit"
	"lifequest/internal/storage"
)

type CreateHabitInput struct {
	Title    string
	Every    dates.Interval
	XPReward int       // 0 means use the configured default
	StartOn  dates.Day // zero means today
}

func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*habit.Habit, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Every.IsValid() {
		return nil, fmt.Errorf("invalid recurrence: %+v", in.Every)
	}

	createdAt := in.StartOn
	if createdAt.IsZero() {
		createdAt = today(s.clock)
	}
	reward := in.XPReward
	if reward <= 0 {
		reward = s.cfg.HabitXP
	}

	h := habit.New(uuid.NewString(), title, createdAt, in.Every, reward)
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if err := s.habits.Insert(ctx, habitToRow(h)); err != nil {
		return nil, err
	}
	return h, nil
}

// GetHabit loads a habit (with its full history) by ID or unambiguous
// ID prefix.
func (s *Service) GetHabit(ctx context.Context, idOrPrefix string) (*habit.Habit, error) {
	row, err := s.resolveHabitRow(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.loadHabit(ctx, row)
}

// ListHabits returns all habits with history and up-to-date streaks.
// A habit whose stored state no longer parses is skipped so one bad
// record cannot take down the whole list.
func (s *Service) ListHabits(ctx context.Context, includeArchived bool) ([]*habit.Habit, error) {
	rows, err := s.habits.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	out := make([]*habit.Habit, 0, len(rows))
	for i := range rows {
		h, err := s.loadHabit(ctx, &rows[i])
		if err != nil {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *Service) ArchiveHabit(ctx context.Context, idOrPrefix string) error {
	row, err := s.resolveHabitRow(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	if err := s.habits.SetArchived(ctx, row.ID, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotFoundError{Kind: "habit", ID: row.ID}
		}
		return err
	}
	return nil
}

// EligibleOn reports whether the habit's checkbox should be enabled
// for the given day, as of the service clock's today.
func (s *Service) EligibleOn(ctx context.Context, idOrPrefix string, d dates.Day) (bool, error) {
	h, err := s.GetHabit(ctx, idOrPrefix)
	if err != nil {
		return false, err
	}
	return habit.CouldBeCompletedOn(h, d, today(s.clock)), nil
}

// Streaks recomputes and persists the cached streak counters.
func (s *Service) refreshStreaks(ctx context.Context, tx storage.DBTX, h *habit.Habit) (current, best int, err error) {
	current, best = habit.Streaks(h)
	if err := storage.NewHabitRepo(tx).UpdateStreaks(ctx, h.ID, current, best); err != nil {
		return 0, 0, err
	}
	return current, best, nil
}

func (s *Service) resolveHabitRow(ctx context.Context, idOrPrefix string) (*storage.HabitRow, error) {
	id := strings.TrimSpace(idOrPrefix)
	if id == "" {
		return nil, errors.New("habit id is required")
	}

	row, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row != nil {
		return row, nil
	}

	// Fall back to prefix match across all habits, archived included.
	rows, err := s.habits.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var match *storage.HabitRow
	for i := range rows {
		if strings.HasPrefix(rows[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("habit id %q is ambiguous", idOrPrefix)
			}
			match = &rows[i]
		}
	}
	if match == nil {
		return nil, NotFoundError{Kind: "habit", ID: idOrPrefix}
	}
	return match, nil
}

// loadHabit turns a stored row plus its entries into the domain habit.
// Corrupt history entries are dropped; a corrupt habit record itself
// is an error.
func (s *Service) loadHabit(ctx context.Context, row *storage.HabitRow) (*habit.Habit, error) {
	createdAt, err := dates.Parse(row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("habit %s: %w", row.ID, err)
	}
	every := dates.Interval{Count: row.IntervalCount, Unit: dates.Unit(row.IntervalUnit)}
	if !every.IsValid() {
		return nil, fmt.Errorf("habit %s: invalid recurrence %d %s", row.ID, row.IntervalCount, row.IntervalUnit)
	}

	h := habit.New(row.ID, row.Title, createdAt, every, row.XPReward)
	h.Archived = row.IsArchived

	entries, err := s.entries.ListByHabit(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		d, err := dates.Parse(e.Day)
		if err != nil {
			// One malformed entry must not make the habit unusable.
			continue
		}
		h.History.Mark(d, e.Success)
	}
	return h, nil
}

func habitToRow(h *habit.Habit) storage.HabitRow {
	cur, best := habit.Streaks(h)
	return storage.HabitRow{
		ID:            h.ID,
		Title:         h.Title,
		CreatedAt:     h.CreatedAt.Key(),
		IntervalCount: h.Every.Count,
		IntervalUnit:  string(h.Every.Unit),
		XPReward:      h.XPReward,
		IsArchived:    h.Archived,
		StreakCurrent: cur,
		StreakBest:    best,
	}
}
