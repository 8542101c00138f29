package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeekStatus describes the lifecycle state of a training week.
type WeekStatus string

const (
	WeekStatusDraft     WeekStatus = "draft"
	WeekStatusActive    WeekStatus = "active"
	WeekStatusCompleted WeekStatus = "completed"
	WeekStatusArchived  WeekStatus = "archived"
)

func (s WeekStatus) Valid() bool {
	switch s {
	case WeekStatusDraft, WeekStatusActive, WeekStatusCompleted, WeekStatusArchived:
		return true
	}
	return false
}

// WeekFocus is a named training emphasis (e.g. "Hypertrophy") that a week
// can point at.
type WeekFocus struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TrainingWeek is a dated period holding scheduled trainings.
// Invariant: StartDate <= EndDate.
type TrainingWeek struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	CreatedBy uuid.UUID  `json:"createdBy"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Status    WeekStatus `json:"status"`
	FocusID   *uuid.UUID `json:"focusId,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Focus and Trainings are populated only by the joined
	// weeks-with-trainings query; plain CRUD reads leave them nil.
	Focus     *WeekFocus `json:"focus,omitempty"`
	Trainings []Training `json:"trainings,omitempty"`
}

// Contains reports whether the given date falls within the week period,
// inclusive on both ends. Only the calendar date is compared.
func (w *TrainingWeek) Contains(t time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(truncateToDay(w.StartDate)) && !day.After(truncateToDay(w.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
