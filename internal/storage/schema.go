package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS persona (
			key TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 1,
			xp_total INTEGER NOT NULL DEFAULT 0,
			remainder_xp INTEGER NOT NULL DEFAULT 0,
			threshold INTEGER NOT NULL DEFAULT 100
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TEXT NOT NULL,
			interval_count INTEGER NOT NULL,
			interval_unit TEXT NOT NULL,
			xp_reward INTEGER NOT NULL,
			is_archived INTEGER NOT NULL DEFAULT 0,
			streak_current INTEGER NOT NULL DEFAULT 0,
			streak_best INTEGER NOT NULL DEFAULT 0
		);`,
		// One row per habit per calendar day; completion toggles
		// overwrite in place rather than appending.
		`CREATE TABLE IF NOT EXISTS habit_entries (
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			success INTEGER NOT NULL,
			xp_awarded INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (habit_id, day),
			FOREIGN KEY (habit_id) REFERENCES habits(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			difficulty INTEGER NOT NULL DEFAULT 1,
			xp_reward INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_entries_habit_id ON habit_entries(habit_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
