package engine

import (
	"context"

	"lifequest/internal/habit"
	"lifequest/internal/storage"
)

// Milestone is a badge shown on the status screen.
type Milestone struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// Milestones derives badge state from the persona, habits and quests.
func Milestones(p *storage.Persona, habits []*habit.Habit, quests []storage.Quest) []Milestone {
	doneQuests := 0
	for _, q := range quests {
		if q.Status == "done" {
			doneQuests++
		}
	}
	bestStreak := 0
	for _, h := range habits {
		if _, best := habit.Streaks(h); best > bestStreak {
			bestStreak = best
		}
	}

	lvl := func(id, name, desc, icon string, min int) Milestone {
		return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: p.Level >= min}
	}
	return []Milestone{
		lvl("first_steps", "First Steps", "Reach level 2", "🌱", 2),
		lvl("on_the_path", "On the Path", "Reach level 5", "🌿", 5),
		lvl("seasoned", "Seasoned", "Reach level 10", "⭐", 10),
		lvl("master", "Master", "Reach level 15", "🌟", 15),

		{ID: "first_quest", Name: "First Quest", Description: "Complete 1 quest", Icon: "✓", Earned: doneQuests >= 1},
		{ID: "productive", Name: "Productive", Description: "Complete 10 quests", Icon: "📋", Earned: doneQuests >= 10},
		{ID: "powerhouse", Name: "Powerhouse", Description: "Complete 50 quests", Icon: "🏆", Earned: doneQuests >= 50},

		{ID: "habit_former", Name: "Habit Former", Description: "Create a habit", Icon: "🔁", Earned: len(habits) > 0},
		{ID: "week_streak", Name: "Consistent", Description: "7-completion streak", Icon: "🔥", Earned: bestStreak >= 7},
		{ID: "iron_streak", Name: "Iron Will", Description: "21-completion streak", Icon: "⚡", Earned: bestStreak >= 21},
		{ID: "legend_streak", Name: "Unstoppable", Description: "60-completion streak", Icon: "💫", Earned: bestStreak >= 60},
	}
}

// MilestonesFor is a convenience wrapper loading everything a status
// display needs.
func (s *Service) MilestonesFor(ctx context.Context) ([]Milestone, error) {
	p, err := s.Persona(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.ListHabits(ctx, true)
	if err != nil {
		return nil, err
	}
	quests, err := s.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	return Milestones(p, habits, quests), nil
}
