package engine

import "fmt"

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

func difficultyMultiplier(d Difficulty) (int, error) {
	switch d {
	case DifficultyTrivial:
		return 1, nil
	case DifficultyEasy:
		return 2, nil
	case DifficultyMedium:
		return 5, nil
	case DifficultyHard:
		return 10, nil
	case DifficultyEpic:
		return 25, nil
	default:
		return 0, fmt.Errorf("invalid difficulty: %d", d)
	}
}

// QuestReward computes quest XP from the configured base and the
// difficulty multiplier. The value is frozen at quest creation time.
func QuestReward(d Difficulty, baseXP int) (int, error) {
	mult, err := difficultyMultiplier(d)
	if err != nil {
		return 0, err
	}
	if baseXP < 1 {
		baseXP = 1
	}
	return baseXP * mult, nil
}
