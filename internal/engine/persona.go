package engine

import (
	"context"
	"database/sql"

	"lifequest/internal/level"
	"lifequest/internal/storage"
)

// ProgressResult reports a persona mutation: the persisted state plus
// whether the level moved.
type ProgressResult struct {
	Persona     storage.Persona
	LevelBefore int
	LeveledUp   bool
	LeveledDown bool
}

// Persona returns the main persona, healing any drift between the
// stored derived fields and the XP total. The total is the single
// source of truth; level, remainder and threshold are cache.
func (s *Service) Persona(ctx context.Context) (*storage.Persona, error) {
	p, err := s.personas.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	r := level.ComputeLevel(p.XPTotal, p.Level)
	if p.Level != r.Level || p.RemainderXP != r.RemainderXP || p.Threshold != r.Threshold {
		p.Level = r.Level
		p.RemainderXP = r.RemainderXP
		p.Threshold = r.Threshold
		if err := s.personas.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// GrantXP applies an XP delta to the persona. Negative deltas clamp
// the total at zero.
func (s *Service) GrantXP(ctx context.Context, delta int) (*ProgressResult, error) {
	var out *ProgressResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.AddXP(p.XPTotal, delta, p.Level)
		})
		out = res
		return err
	})
	return out, err
}

// SetXP replaces the persona's XP total outright (clamped to zero).
func (s *Service) SetXP(ctx context.Context, totalXP int) (*ProgressResult, error) {
	var out *ProgressResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.SetXP(totalXP, p.Level)
		})
		out = res
		return err
	})
	return out, err
}

// ResetProgress zeroes the persona back to the starting state.
func (s *Service) ResetProgress(ctx context.Context) (*ProgressResult, error) {
	return s.SetXP(ctx, 0)
}

// applyPersonaXP runs the read-modify-write cycle for persona XP
// inside the caller's transaction.
func applyPersonaXP(ctx context.Context, tx storage.DBTX, apply func(*storage.Persona) level.ApplyResult) (*ProgressResult, error) {
	personas := storage.NewPersonaRepo(tx)
	p, err := personas.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}

	levelBefore := p.Level
	r := apply(p)
	p.XPTotal = r.TotalXP
	p.Level = r.Level
	p.RemainderXP = r.RemainderXP
	p.Threshold = r.Threshold
	if err := personas.Update(ctx, p); err != nil {
		return nil, err
	}

	return &ProgressResult{
		Persona:     *p,
		LevelBefore: levelBefore,
		LeveledUp:   r.LeveledUp,
		LeveledDown: r.LeveledDown,
	}, nil
}
