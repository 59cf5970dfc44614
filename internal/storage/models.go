package storage

import "time"

type Persona struct {
	Key         string
	Level       int
	XPTotal     int
	RemainderXP int
	Threshold   int
}

// HabitRow is the persisted form of a habit; dates stay as YYYY-MM-DD
// text so a corrupt value can be skipped at load instead of failing
// the scan.
type HabitRow struct {
	ID            string
	Title         string
	CreatedAt     string
	IntervalCount int
	IntervalUnit  string
	XPReward      int
	IsArchived    bool
	StreakCurrent int
	StreakBest    int
}

type HabitEntryRow struct {
	HabitID   string
	Day       string
	Success   bool
	XPAwarded int
}

type Quest struct {
	ID          string
	Title       string
	Difficulty  int
	XPReward    int
	Status      string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
