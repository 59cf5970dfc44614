package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lifequest/internal/config"
	"lifequest/internal/dates"
	"lifequest/internal/storage"
)

func newTestService(t *testing.T) (*Service, *FakeClock, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db, config.Default())
	clock := NewFakeClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local))
	svc.clock = clock

	cleanup := func() {
		_ = db.Close()
	}
	return svc, clock, cleanup
}

func TestPersonaStartsAtLevelOne(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.Persona(ctx)
	if err != nil {
		t.Fatalf("persona: %v", err)
	}
	if p.Level != 1 || p.XPTotal != 0 || p.RemainderXP != 0 || p.Threshold != 100 {
		t.Fatalf("fresh persona = %+v, want level 1 / 0 xp / threshold 100", p)
	}
}

func TestGrantXPLevelsUpAndClampsAtZero(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.GrantXP(ctx, 105)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Persona.Level != 2 || res.Persona.RemainderXP != 5 || res.Persona.Threshold != 120 {
		t.Fatalf("after +105: %+v", res.Persona)
	}
	if !res.LeveledUp || res.LevelBefore != 1 {
		t.Fatalf("expected level-up from 1, got %+v", res)
	}

	res, err = svc.GrantXP(ctx, -1000)
	if err != nil {
		t.Fatalf("grant negative: %v", err)
	}
	if res.Persona.XPTotal != 0 || res.Persona.Level != 1 {
		t.Fatalf("after clamp: %+v", res.Persona)
	}
	if !res.LeveledDown {
		t.Fatalf("expected LeveledDown, got %+v", res)
	}
}

func TestSetXPAndReset(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.SetXP(ctx, 364)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if res.Persona.Level != 4 || res.Persona.RemainderXP != 0 {
		t.Fatalf("after set 364: %+v", res.Persona)
	}

	res, err = svc.ResetProgress(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if res.Persona.XPTotal != 0 || res.Persona.Level != 1 || res.Persona.Threshold != 100 {
		t.Fatalf("after reset: %+v", res.Persona)
	}
}

func TestPersonaHealsDriftedDerivedState(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.PersonaRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get persona: %v", err)
	}
	p.XPTotal = 220
	p.Level = 1 // stale cache
	if err := svc.PersonaRepo().Update(ctx, p); err != nil {
		t.Fatalf("update persona: %v", err)
	}

	healed, err := svc.Persona(ctx)
	if err != nil {
		t.Fatalf("persona: %v", err)
	}
	if healed.Level != 3 || healed.RemainderXP != 0 || healed.Threshold != 144 {
		t.Fatalf("healed persona = %+v, want level 3", healed)
	}
}

func TestCompleteHabitAwardsXPAndTracksStreaks(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title:   "Morning stretch",
		Every:   dates.Interval{Count: 1, Unit: dates.UnitDays},
		StartOn: dates.MustParse("2024-06-10"),
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	res, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-10"))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.XPAwarded != config.Default().HabitXP {
		t.Fatalf("awarded %d, want default %d", res.XPAwarded, config.Default().HabitXP)
	}
	if res.StreakCurrent != 1 || res.StreakBest != 1 {
		t.Fatalf("streaks = %d/%d, want 1/1", res.StreakCurrent, res.StreakBest)
	}

	res, err = svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-11"))
	if err != nil {
		t.Fatalf("complete day 2: %v", err)
	}
	if res.StreakCurrent != 2 || res.StreakBest != 2 {
		t.Fatalf("streaks = %d/%d, want 2/2", res.StreakCurrent, res.StreakBest)
	}

	p, err := svc.Persona(ctx)
	if err != nil {
		t.Fatalf("persona: %v", err)
	}
	if want := 2 * config.Default().HabitXP; p.XPTotal != want {
		t.Fatalf("persona xp = %d, want %d", p.XPTotal, want)
	}
}

func TestCompleteHabitRejectsIneligibleDays(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title:   "Water plants",
		Every:   dates.Interval{Count: 3, Unit: dates.UnitDays},
		StartOn: dates.MustParse("2024-06-01"),
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	if _, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-05-31")); err == nil {
		t.Fatalf("expected error completing before creation")
	}
	if _, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-16")); err == nil {
		t.Fatalf("expected error completing in the future")
	}

	if _, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-10")); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// Next expected occurrence is 2024-06-13.
	_, err = svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-11"))
	if _, ok := err.(IneligibleError); !ok {
		t.Fatalf("err = %v, want IneligibleError", err)
	}
	// Completing the same day twice is rejected before eligibility.
	if _, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-10")); err == nil {
		t.Fatalf("expected error for duplicate completion")
	}
	if _, err := svc.CompleteHabit(ctx, h.ID, dates.MustParse("2024-06-13")); err != nil {
		t.Fatalf("complete next occurrence: %v", err)
	}
}

func TestUncompleteHabitDeductsAwardedXP(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title:    "Journal",
		Every:    dates.Interval{Count: 1, Unit: dates.UnitDays},
		XPReward: 90,
		StartOn:  dates.MustParse("2024-06-10"),
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	day := dates.MustParse("2024-06-10")
	if _, err := svc.CompleteHabit(ctx, h.ID, day); err != nil {
		t.Fatalf("complete: %v", err)
	}

	res, err := svc.UncompleteHabit(ctx, h.ID, day)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if res.XPDeducted != 90 {
		t.Fatalf("deducted %d, want 90", res.XPDeducted)
	}
	if res.StreakCurrent != 0 || res.StreakBest != 0 {
		t.Fatalf("streaks = %d/%d, want 0/0", res.StreakCurrent, res.StreakBest)
	}

	p, _ := svc.Persona(ctx)
	if p.XPTotal != 0 {
		t.Fatalf("persona xp = %d, want 0", p.XPTotal)
	}

	// The day is eligible again after the undo.
	if _, err := svc.CompleteHabit(ctx, h.ID, day); err != nil {
		t.Fatalf("re-complete after undo: %v", err)
	}
	// But a second undo of a now-unmarked day fails.
	if _, err := svc.UncompleteHabit(ctx, h.ID, dates.MustParse("2024-06-11")); err == nil {
		t.Fatalf("expected error undoing a day without completion")
	}
}

func TestArchivedHabitCannotBeCompleted(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title: "Old habit",
		Every: dates.Interval{Count: 1, Unit: dates.UnitDays},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if err := svc.ArchiveHabit(ctx, h.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	_, err = svc.CompleteHabit(ctx, h.ID, dates.Day{})
	if _, ok := err.(ArchivedError); !ok {
		t.Fatalf("err = %v, want ArchivedError", err)
	}

	active, err := svc.ListHabits(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active habits = %d, want 0", len(active))
	}
	all, err := svc.ListHabits(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("all habits = %d, want 1 (soft delete)", len(all))
	}
}

func TestCorruptHistoryEntryIsSkipped(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title:   "Robust habit",
		Every:   dates.Interval{Count: 1, Unit: dates.UnitDays},
		StartOn: dates.MustParse("2024-06-01"),
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	entries := storage.NewEntryRepo(svc.db)
	if err := entries.Upsert(ctx, storage.HabitEntryRow{HabitID: h.ID, Day: "garbage", Success: true}); err != nil {
		t.Fatalf("insert corrupt entry: %v", err)
	}
	if err := entries.Upsert(ctx, storage.HabitEntryRow{HabitID: h.ID, Day: "2024-06-05", Success: true, XPAwarded: 10}); err != nil {
		t.Fatalf("insert good entry: %v", err)
	}

	loaded, err := svc.GetHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if len(loaded.History) != 1 {
		t.Fatalf("history entries = %d, want 1 (corrupt skipped)", len(loaded.History))
	}

	ok, err := svc.EligibleOn(ctx, h.ID, dates.MustParse("2024-06-10"))
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	if !ok {
		t.Fatalf("expected eligibility to survive a corrupt entry")
	}
}

func TestQuestCompleteAndRestore(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	q, err := svc.CreateQuest(ctx, CreateQuestInput{Title: "Ship the report", Difficulty: DifficultyMedium})
	if err != nil {
		t.Fatalf("create quest: %v", err)
	}
	if want := config.Default().BaseXP * 5; q.XPReward != want {
		t.Fatalf("reward = %d, want %d", q.XPReward, want)
	}

	res, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	if res.XPAwarded != q.XPReward {
		t.Fatalf("awarded = %d, want %d", res.XPAwarded, q.XPReward)
	}
	if _, err := svc.CompleteQuest(ctx, q.ID); err == nil {
		t.Fatalf("expected error completing a done quest")
	}

	undo, err := svc.RestoreQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("restore quest: %v", err)
	}
	if undo.XPDeducted != q.XPReward {
		t.Fatalf("deducted = %d, want %d", undo.XPDeducted, q.XPReward)
	}
	p, _ := svc.Persona(ctx)
	if p.XPTotal != 0 {
		t.Fatalf("persona xp = %d, want 0", p.XPTotal)
	}
}

func TestIDPrefixResolution(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h, err := svc.CreateHabit(ctx, CreateHabitInput{
		Title: "Prefix habit",
		Every: dates.Interval{Count: 1, Unit: dates.UnitDays},
	})
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}

	got, err := svc.GetHabit(ctx, h.ID[:8])
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	if got.ID != h.ID {
		t.Fatalf("resolved %s, want %s", got.ID, h.ID)
	}

	_, err = svc.GetHabit(ctx, "zzzz")
	if _, ok := err.(NotFoundError); !ok {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestMilestones(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.SetXP(ctx, 250); err != nil { // level 3
		t.Fatalf("set xp: %v", err)
	}
	if _, err := svc.CreateHabit(ctx, CreateHabitInput{Title: "h", Every: dates.Interval{Count: 1, Unit: dates.UnitDays}}); err != nil {
		t.Fatalf("create habit: %v", err)
	}

	ms, err := svc.MilestonesFor(ctx)
	if err != nil {
		t.Fatalf("milestones: %v", err)
	}
	byID := map[string]bool{}
	for _, m := range ms {
		byID[m.ID] = m.Earned
	}
	if !byID["first_steps"] {
		t.Fatalf("expected first_steps earned at level 3")
	}
	if byID["on_the_path"] {
		t.Fatalf("did not expect on_the_path at level 3")
	}
	if !byID["habit_former"] {
		t.Fatalf("expected habit_former earned")
	}
	if byID["first_quest"] {
		t.Fatalf("did not expect first_quest with no quests done")
	}
}
