// Package planner contains the pure data-shaping core: the calendar
// adapter that turns flat week rows into a weekday grid, and the alert
// analyzer that scans the grid for conditions worth surfacing.
package planner

import (
	"time"

	"fitplan/training-planner/internal/domain"
)

// WeekdaySlots is the number of plannable days per week. Scheduling is
// Monday through Friday only; weekend trainings are dropped during
// adaptation.
const WeekdaySlots = 5

// WeekSchedule is the calendar-shaped view of one training week: the
// week row plus at most one training per weekday slot.
type WeekSchedule struct {
	Week       *domain.TrainingWeek           `json:"week"`
	WeekNumber int                            `json:"weekNumber"`
	Days       [WeekdaySlots]*domain.Training `json:"days"`
	// Dropped counts trainings that could not be placed: weekend dates
	// and same-day collisions beyond the first.
	Dropped int `json:"dropped,omitempty"`
}

// DayName returns the label of a slot index (0 = Monday).
func DayName(slot int) string {
	names := [WeekdaySlots]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	if slot < 0 || slot >= WeekdaySlots {
		return ""
	}
	return names[slot]
}

// BuildSchedule adapts flat weeks-with-trainings rows into weekday
// grids, one per week, preserving the input week order.
//
// Placement rules:
//   - Monday maps to slot 0, Friday to slot 4.
//   - Saturday and Sunday dates are dropped silently.
//   - When two trainings land on the same slot the first one placed
//     wins and later ones are dropped. Collisions still surface
//     through the alert analyzer, so nothing is lost quietly.
func BuildSchedule(weeks []domain.TrainingWeek) []WeekSchedule {
	schedules := make([]WeekSchedule, 0, len(weeks))
	for i := range weeks {
		week := &weeks[i]
		s := WeekSchedule{
			Week:       week,
			WeekNumber: WeekNumber(week.StartDate),
		}
		for j := range week.Trainings {
			training := &week.Trainings[j]
			slot, ok := slotFor(training.ScheduledDate)
			if !ok {
				s.Dropped++
				continue
			}
			if s.Days[slot] != nil {
				s.Dropped++
				continue
			}
			s.Days[slot] = training
		}
		schedules = append(schedules, s)
	}
	return schedules
}

// slotFor maps a date to its weekday slot. Weekend dates report ok=false.
func slotFor(date time.Time) (int, bool) {
	switch date.Weekday() {
	case time.Monday:
		return 0, true
	case time.Tuesday:
		return 1, true
	case time.Wednesday:
		return 2, true
	case time.Thursday:
		return 3, true
	case time.Friday:
		return 4, true
	}
	return 0, false
}

// WeekNumber computes a week-of-year index from the date using plain
// day-of-year arithmetic. It is deliberately not ISO-8601: weeks
// straddling a year boundary are not reconciled. The number is shown as
// a label next to the week dates, never used for ordering or lookups,
// so best-effort is enough here.
func WeekNumber(start time.Time) int {
	return (start.YearDay()-1)/7 + 1
}

// StatusLabel renders a week status for display.
func StatusLabel(s domain.WeekStatus) string {
	switch s {
	case domain.WeekStatusDraft:
		return "Draft"
	case domain.WeekStatusActive:
		return "Active"
	case domain.WeekStatusCompleted:
		return "Completed"
	case domain.WeekStatusArchived:
		return "Archived"
	}
	return string(s)
}
