package engine

import (
	"fmt"

	"lifequest/internal/dates"
)

// NotFoundError is returned when an operation targets an absent
// persona, habit or quest. The operation cannot proceed and is not
// retried.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ArchivedError is returned when completing or modifying an archived
// habit.
type ArchivedError struct {
	ID string
}

func (e ArchivedError) Error() string {
	return fmt.Sprintf("habit %s is archived", e.ID)
}

// IneligibleError is returned when a day is not a valid completion day
// for a habit per its recurrence and history.
type IneligibleError struct {
	HabitID string
	Day     dates.Day
}

func (e IneligibleError) Error() string {
	return fmt.Sprintf("habit %s cannot be completed on %s", e.HabitID, e.Day)
}
