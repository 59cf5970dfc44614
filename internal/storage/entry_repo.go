package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type EntryRepo struct {
	db DBTX
}

func NewEntryRepo(db DBTX) *EntryRepo {
	return &EntryRepo{db: db}
}

// Upsert records the action for (habit, day), replacing any existing
// entry for that day. The primary key keeps history at one entry per
// calendar day no matter how often the user toggles.
func (r *EntryRepo) Upsert(ctx context.Context, e HabitEntryRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_entries (habit_id, day, success, xp_awarded)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (habit_id, day) DO UPDATE SET success = excluded.success, xp_awarded = excluded.xp_awarded
	`, e.HabitID, e.Day, boolToInt(e.Success), e.XPAwarded)
	if err != nil {
		return fmt.Errorf("entry upsert: %w", err)
	}
	return nil
}

func (r *EntryRepo) Get(ctx context.Context, habitID, day string) (*HabitEntryRow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habit_id, day, success, xp_awarded
		FROM habit_entries
		WHERE habit_id = ? AND day = ?
	`, habitID, day)

	var e HabitEntryRow
	var success int
	if err := row.Scan(&e.HabitID, &e.Day, &success, &e.XPAwarded); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("entry get: %w", err)
	}
	e.Success = success != 0
	return &e, nil
}

func (r *EntryRepo) ListByHabit(ctx context.Context, habitID string) ([]HabitEntryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, success, xp_awarded
		FROM habit_entries
		WHERE habit_id = ?
		ORDER BY day
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("entry list: %w", err)
	}
	defer rows.Close()

	var out []HabitEntryRow
	for rows.Next() {
		var e HabitEntryRow
		var success int
		if err := rows.Scan(&e.HabitID, &e.Day, &success, &e.XPAwarded); err != nil {
			return nil, fmt.Errorf("entry scan: %w", err)
		}
		e.Success = success != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entry rows: %w", err)
	}
	return out, nil
}
