package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) Insert(ctx context.Context, q Quest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (id, title, difficulty, xp_reward, status)
		VALUES (?, ?, ?, ?, ?)
	`, q.ID, q.Title, q.Difficulty, q.XPReward, q.Status)
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) Get(ctx context.Context, id string) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, difficulty, xp_reward, status, created_at, completed_at
		FROM quests
		WHERE id = ?
	`, id)
	return scanQuestRow(row)
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, difficulty, xp_reward, status, created_at, completed_at
		FROM quests
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		var q Quest
		if err := rows.Scan(&q.ID, &q.Title, &q.Difficulty, &q.XPReward, &q.Status, &q.CreatedAt, &q.CompletedAt); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) MarkDone(ctx context.Context, id string, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET status = 'done', completed_at = ? WHERE id = ?
	`, completedAt, id)
	if err != nil {
		return fmt.Errorf("quest mark done: %w", err)
	}
	return nil
}

func (r *QuestRepo) MarkPending(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quests SET status = 'pending', completed_at = NULL WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("quest mark pending: %w", err)
	}
	return nil
}

func scanQuestRow(row *sql.Row) (*Quest, error) {
	var q Quest
	if err := row.Scan(&q.ID, &q.Title, &q.Difficulty, &q.XPReward, &q.Status, &q.CreatedAt, &q.CompletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	return &q, nil
}
