package planner

import (
	"fmt"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"
)

// Severity ranks an alert. Critical sorts before warning, warning
// before info.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	}
	return 3
}

// Alert types emitted by Analyze.
const (
	AlertEmptyWeek     = "empty_week"
	AlertMissingFocus  = "missing_focus"
	AlertDateCollision = "date_collision"
	AlertEmptyBlocks   = "empty_blocks"
)

// Alert is one actionable finding about the current plan. Alerts are
// never persisted; Analyze recomputes them from scratch every call.
type Alert struct {
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	// Action is a hint for the client about what fixes the finding,
	// e.g. "plan_week" or "assign_focus".
	Action string `json:"action,omitempty"`
}

// Analyze scans the adapted schedules against the reference time and
// returns alerts sorted by severity, preserving discovery order within
// the same tier. Each rule fires independently; one week can trigger
// several alerts.
func Analyze(schedules []WeekSchedule, now time.Time) []Alert {
	var alerts []Alert

	for i := range schedules {
		s := &schedules[i]
		week := s.Week
		current := week.Contains(now)
		future := week.StartDate.After(now)
		if !current && !future {
			continue // past weeks raise nothing
		}

		if len(week.Trainings) == 0 {
			severity := SeverityWarning
			if current {
				severity = SeverityCritical
			}
			alerts = append(alerts, Alert{
				Severity: severity,
				Type:     AlertEmptyWeek,
				Message: fmt.Sprintf("week %d (%s) has no trainings scheduled",
					s.WeekNumber, week.StartDate.Format("2006-01-02")),
				Action: "plan_week",
			})
		}

		if week.FocusID == nil && week.Focus == nil {
			alerts = append(alerts, Alert{
				Severity: SeverityInfo,
				Type:     AlertMissingFocus,
				Message: fmt.Sprintf("week %d (%s) has no focus defined",
					s.WeekNumber, week.StartDate.Format("2006-01-02")),
				Action: "assign_focus",
			})
		}
	}

	alerts = append(alerts, collisionAlerts(schedules)...)
	alerts = append(alerts, emptyBlockAlerts(schedules)...)

	// stable keeps discovery order inside each severity tier
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.rank() < alerts[j].Severity.rank()
	})
	return alerts
}

// collisionAlerts emits one warning per calendar date carrying two or
// more trainings, across all weeks. Counting walks the raw training
// lists rather than the slot grid because the adapter already dropped
// the colliding extras.
func collisionAlerts(schedules []WeekSchedule) []Alert {
	counts := make(map[string]int)
	var order []string
	for i := range schedules {
		for j := range schedules[i].Week.Trainings {
			date := schedules[i].Week.Trainings[j].ScheduledDate.Format("2006-01-02")
			if counts[date] == 0 {
				order = append(order, date)
			}
			counts[date]++
		}
	}

	var alerts []Alert
	for _, date := range order {
		if counts[date] < 2 {
			continue
		}
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Type:     AlertDateCollision,
			Message:  fmt.Sprintf("%d trainings scheduled on %s", counts[date], date),
			Action:   "resolve_collision",
		})
	}
	return alerts
}

// emptyBlockAlerts emits one warning per training that has
// non-conditioning blocks without a single prescription. Conditioning
// blocks are excluded: they are routinely described free-form in the
// block label instead of per-exercise rows.
func emptyBlockAlerts(schedules []WeekSchedule) []Alert {
	var alerts []Alert
	for i := range schedules {
		for j := range schedules[i].Week.Trainings {
			training := &schedules[i].Week.Trainings[j]
			empty := 0
			for k := range training.Blocks {
				block := &training.Blocks[k]
				if block.Type == domain.BlockConditioning {
					continue
				}
				if len(block.Prescriptions) == 0 {
					empty++
				}
			}
			if empty > 0 {
				alerts = append(alerts, Alert{
					Severity: SeverityWarning,
					Type:     AlertEmptyBlocks,
					Message: fmt.Sprintf("training %q (%s) has %d block(s) without exercises",
						training.Title, training.ScheduledDate.Format("2006-01-02"), empty),
					Action: "fill_blocks",
				})
			}
		}
	}
	return alerts
}
