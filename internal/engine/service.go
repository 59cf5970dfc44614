package engine

import (
	"database/sql"
	"errors"
	"strings"

	"lifequest/internal/config"
	"lifequest/internal/dates"
	"lifequest/internal/storage"
)

// Service wires the pure progression and recurrence cores to SQLite
// persistence. All XP state flows through the level package so the
// persisted level/remainder/threshold always stay derivable from the
// XP total alone.
type Service struct {
	db    *sql.DB
	cfg   config.Config
	clock Clock

	personas *storage.PersonaRepo
	habits   *storage.HabitRepo
	entries  *storage.EntryRepo
	quests   *storage.QuestRepo
}

func NewService(db *sql.DB, cfg config.Config) *Service {
	return &Service{
		db:       db,
		cfg:      cfg,
		clock:    RealClock{},
		personas: storage.NewPersonaRepo(db),
		habits:   storage.NewHabitRepo(db),
		entries:  storage.NewEntryRepo(db),
		quests:   storage.NewQuestRepo(db),
	}
}

// Today reports the current local calendar day per the service clock.
func (s *Service) Today() dates.Day { return today(s.clock) }

func (s *Service) PersonaRepo() *storage.PersonaRepo { return s.personas }
func (s *Service) HabitRepo() *storage.HabitRepo     { return s.habits }
func (s *Service) QuestRepo() *storage.QuestRepo     { return s.quests }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}
