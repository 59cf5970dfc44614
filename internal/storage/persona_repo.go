package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// MainPersonaKey is the single-user persona row. The schema allows
// more but the application is single-user by design.
const MainPersonaKey = "main"

type PersonaRepo struct {
	db DBTX
}

func NewPersonaRepo(db DBTX) *PersonaRepo {
	return &PersonaRepo{db: db}
}

func (r *PersonaRepo) Get(ctx context.Context, key string) (*Persona, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, level, xp_total, remainder_xp, threshold
		FROM persona
		WHERE key = ?
	`, key)

	var p Persona
	if err := row.Scan(&p.Key, &p.Level, &p.XPTotal, &p.RemainderXP, &p.Threshold); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("persona get: %w", err)
	}
	return &p, nil
}

func (r *PersonaRepo) GetOrCreateMain(ctx context.Context) (*Persona, error) {
	p, err := r.Get(ctx, MainPersonaKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO persona (key) VALUES (?)`, MainPersonaKey); err != nil {
		return nil, fmt.Errorf("persona insert: %w", err)
	}
	return r.Get(ctx, MainPersonaKey)
}

func (r *PersonaRepo) Update(ctx context.Context, p *Persona) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE persona
		SET level = ?, xp_total = ?, remainder_xp = ?, threshold = ?
		WHERE key = ?
	`, p.Level, p.XPTotal, p.RemainderXP, p.Threshold, p.Key)
	if err != nil {
		return fmt.Errorf("persona update: %w", err)
	}
	return nil
}
