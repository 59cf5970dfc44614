package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HabitRepo struct {
	db DBTX
}

func NewHabitRepo(db DBTX) *HabitRepo {
	return &HabitRepo{db: db}
}

func (r *HabitRepo) Insert(ctx context.Context, h HabitRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, title, created_at, interval_count, interval_unit, xp_reward, is_archived, streak_current, streak_best)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.Title, h.CreatedAt, h.IntervalCount, h.IntervalUnit, h.XPReward, boolToInt(h.IsArchived), h.StreakCurrent, h.StreakBest)
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

func (r *HabitRepo) Get(ctx context.Context, id string) (*HabitRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, interval_count, interval_unit, xp_reward, is_archived, streak_current, streak_best
		FROM habits
		WHERE id = ?
	`, id)

	var h HabitRow
	var archived int
	if err := row.Scan(&h.ID, &h.Title, &h.CreatedAt, &h.IntervalCount, &h.IntervalUnit, &h.XPReward, &archived, &h.StreakCurrent, &h.StreakBest); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit get: %w", err)
	}
	h.IsArchived = archived != 0
	return &h, nil
}

func (r *HabitRepo) List(ctx context.Context, includeArchived bool) ([]HabitRow, error) {
	q := `
		SELECT id, title, created_at, interval_count, interval_unit, xp_reward, is_archived, streak_current, streak_best
		FROM habits
	`
	if !includeArchived {
		q += ` WHERE is_archived = 0`
	}
	q += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []HabitRow
	for rows.Next() {
		var h HabitRow
		var archived int
		if err := rows.Scan(&h.ID, &h.Title, &h.CreatedAt, &h.IntervalCount, &h.IntervalUnit, &h.XPReward, &archived, &h.StreakCurrent, &h.StreakBest); err != nil {
			return nil, fmt.Errorf("habit scan: %w", err)
		}
		h.IsArchived = archived != 0
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE habits SET is_archived = ? WHERE id = ?`, boolToInt(archived), id)
	if err != nil {
		return fmt.Errorf("habit archive: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("habit archive rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStreaks persists the cached streak counters derived from the
// habit's history.
func (r *HabitRepo) UpdateStreaks(ctx context.Context, id string, current, best int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE habits SET streak_current = ?, streak_best = ? WHERE id = ?
	`, current, best, id)
	if err != nil {
		return fmt.Errorf("habit update streaks: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
