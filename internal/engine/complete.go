package engine

import (
	"context"
	"database/sql"
	"fmt"

	"lifequest/internal/dates"
	"lifequest/internal/habit"
	"lifequest/internal/level"
	"lifequest/internal/storage"
)

type HabitCompletionResult struct {
	HabitID       string
	Day           dates.Day
	XPAwarded     int
	LevelBefore   int
	LevelAfter    int
	LeveledUp     bool
	StreakCurrent int
	StreakBest    int
}

type HabitRestoreResult struct {
	HabitID       string
	Day           dates.Day
	XPDeducted    int
	LevelBefore   int
	LevelAfter    int
	LeveledDown   bool
	StreakCurrent int
	StreakBest    int
}

// CompleteHabit marks the habit completed on day d (today when d is
// zero), awards its XP and refreshes the cached streaks. The day must
// pass the recurrence eligibility check.
func (s *Service) CompleteHabit(ctx context.Context, idOrPrefix string, d dates.Day) (*HabitCompletionResult, error) {
	h, err := s.GetHabit(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if h.Archived {
		return nil, ArchivedError{ID: h.ID}
	}
	if d.IsZero() {
		d = today(s.clock)
	}
	if h.History.CompletedOn(d) {
		return nil, fmt.Errorf("habit %s is already completed on %s", h.ID, d)
	}
	if !habit.CouldBeCompletedOn(h, d, today(s.clock)) {
		return nil, IneligibleError{HabitID: h.ID, Day: d}
	}

	award := h.XPReward
	var out *HabitCompletionResult
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		entries := storage.NewEntryRepo(tx)
		if err := entries.Upsert(ctx, storage.HabitEntryRow{
			HabitID:   h.ID,
			Day:       d.Key(),
			Success:   true,
			XPAwarded: award,
		}); err != nil {
			return err
		}

		h.History.Mark(d, true)
		cur, best, err := s.refreshStreaks(ctx, tx, h)
		if err != nil {
			return err
		}

		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.AddXP(p.XPTotal, award, p.Level)
		})
		if err != nil {
			return err
		}

		out = &HabitCompletionResult{
			HabitID:       h.ID,
			Day:           d,
			XPAwarded:     award,
			LevelBefore:   res.LevelBefore,
			LevelAfter:    res.Persona.Level,
			LeveledUp:     res.LeveledUp,
			StreakCurrent: cur,
			StreakBest:    best,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UncompleteHabit undoes a completion: the day's entry is overwritten
// as unmarked (not deleted, so the one-entry-per-day record of the
// user's action survives) and the awarded XP is deducted.
func (s *Service) UncompleteHabit(ctx context.Context, idOrPrefix string, d dates.Day) (*HabitRestoreResult, error) {
	h, err := s.GetHabit(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if h.Archived {
		return nil, ArchivedError{ID: h.ID}
	}
	if d.IsZero() {
		d = today(s.clock)
	}

	prev, err := s.entries.Get(ctx, h.ID, d.Key())
	if err != nil {
		return nil, err
	}
	if prev == nil || !prev.Success {
		return nil, fmt.Errorf("habit %s has no completion on %s", h.ID, d)
	}
	deduct := prev.XPAwarded

	var out *HabitRestoreResult
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		entries := storage.NewEntryRepo(tx)
		if err := entries.Upsert(ctx, storage.HabitEntryRow{
			HabitID: h.ID,
			Day:     d.Key(),
			Success: false,
		}); err != nil {
			return err
		}

		h.History.Mark(d, false)
		cur, best, err := s.refreshStreaks(ctx, tx, h)
		if err != nil {
			return err
		}

		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.AddXP(p.XPTotal, -deduct, p.Level)
		})
		if err != nil {
			return err
		}

		out = &HabitRestoreResult{
			HabitID:       h.ID,
			Day:           d,
			XPDeducted:    deduct,
			LevelBefore:   res.LevelBefore,
			LevelAfter:    res.Persona.Level,
			LeveledDown:   res.LeveledDown,
			StreakCurrent: cur,
			StreakBest:    best,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
