package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lifequest/internal/level"
	"lifequest/internal/storage"
)

type CreateQuestInput struct {
	Title      string
	Difficulty Difficulty
}

type QuestCompletionResult struct {
	QuestID     string
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LeveledUp   bool
}

type QuestRestoreResult struct {
	QuestID     string
	XPDeducted  int
	LevelBefore int
	LevelAfter  int
	LeveledDown bool
}

func (s *Service) CreateQuest(ctx context.Context, in CreateQuestInput) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Difficulty.IsValid() {
		return nil, fmt.Errorf("invalid difficulty: %d", in.Difficulty)
	}

	reward, err := QuestReward(in.Difficulty, s.cfg.BaseXP)
	if err != nil {
		return nil, err
	}

	q := storage.Quest{
		ID:         uuid.NewString(),
		Title:      title,
		Difficulty: int(in.Difficulty),
		XPReward:   reward,
		Status:     "pending",
	}
	if err := s.quests.Insert(ctx, q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Service) ListQuests(ctx context.Context) ([]storage.Quest, error) {
	return s.quests.ListAll(ctx)
}

// CompleteQuest marks a pending quest done and awards its XP.
func (s *Service) CompleteQuest(ctx context.Context, idOrPrefix string) (*QuestCompletionResult, error) {
	q, err := s.resolveQuest(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if q.Status == "done" {
		return nil, fmt.Errorf("quest %s is already done", q.ID)
	}

	var out *QuestCompletionResult
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewQuestRepo(tx).MarkDone(ctx, q.ID, s.clock.Now()); err != nil {
			return err
		}
		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.AddXP(p.XPTotal, q.XPReward, p.Level)
		})
		if err != nil {
			return err
		}
		out = &QuestCompletionResult{
			QuestID:     q.ID,
			XPAwarded:   q.XPReward,
			LevelBefore: res.LevelBefore,
			LevelAfter:  res.Persona.Level,
			LeveledUp:   res.LeveledUp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RestoreQuest undoes a completion: the quest goes back to pending and
// the awarded XP is deducted.
func (s *Service) RestoreQuest(ctx context.Context, idOrPrefix string) (*QuestRestoreResult, error) {
	q, err := s.resolveQuest(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if q.Status != "done" {
		return nil, fmt.Errorf("quest %s is not done", q.ID)
	}

	var out *QuestRestoreResult
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.NewQuestRepo(tx).MarkPending(ctx, q.ID); err != nil {
			return err
		}
		res, err := applyPersonaXP(ctx, tx, func(p *storage.Persona) level.ApplyResult {
			return level.AddXP(p.XPTotal, -q.XPReward, p.Level)
		})
		if err != nil {
			return err
		}
		out = &QuestRestoreResult{
			QuestID:     q.ID,
			XPDeducted:  q.XPReward,
			LevelBefore: res.LevelBefore,
			LevelAfter:  res.Persona.Level,
			LeveledDown: res.LeveledDown,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) resolveQuest(ctx context.Context, idOrPrefix string) (*storage.Quest, error) {
	id := strings.TrimSpace(idOrPrefix)
	if id == "" {
		return nil, errors.New("quest id is required")
	}

	q, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q != nil {
		return q, nil
	}

	all, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var match *storage.Quest
	for i := range all {
		if strings.HasPrefix(all[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("quest id %q is ambiguous", idOrPrefix)
			}
			match = &all[i]
		}
	}
	if match == nil {
		return nil, NotFoundError{Kind: "quest", ID: idOrPrefix}
	}
	return match, nil
}
