package planner

import (
	"testing"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertsOfType(alerts []Alert, typ string) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestAnalyze_EmptyCurrentWeekIsCritical(t *testing.T) {
	now := day(2025, 1, 8)
	week := weekOf(day(2025, 1, 6), day(2025, 1, 10))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)

	empty := alertsOfType(alerts, AlertEmptyWeek)
	require.Len(t, empty, 1)
	assert.Equal(t, SeverityCritical, empty[0].Severity)
	assert.Contains(t, empty[0].Message, "2025-01-06")
}

func TestAnalyze_EmptyFutureWeekIsWarning(t *testing.T) {
	now := day(2025, 1, 8)
	week := weekOf(day(2025, 1, 13), day(2025, 1, 17))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)

	empty := alertsOfType(alerts, AlertEmptyWeek)
	require.Len(t, empty, 1)
	assert.Equal(t, SeverityWarning, empty[0].Severity)
}

func TestAnalyze_PastWeeksRaiseNothing(t *testing.T) {
	now := day(2025, 6, 1)
	week := weekOf(day(2025, 1, 6), day(2025, 1, 10))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)
	assert.Empty(t, alerts)
}

func TestAnalyze_MissingFocusIsInfo(t *testing.T) {
	now := day(2025, 1, 8)
	week := weekOf(day(2025, 1, 6), day(2025, 1, 10),
		trainingOn(day(2025, 1, 8), "Squat Day"))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)

	focus := alertsOfType(alerts, AlertMissingFocus)
	require.Len(t, focus, 1)
	assert.Equal(t, SeverityInfo, focus[0].Severity)
	assert.Contains(t, focus[0].Message, "no focus")

	// the week has a training, so no empty-week alert alongside
	assert.Empty(t, alertsOfType(alerts, AlertEmptyWeek))
}

func TestAnalyze_FocusAssignedNoInfoAlert(t *testing.T) {
	now := day(2025, 1, 8)
	focusID := uuid.New()
	week := weekOf(day(2025, 1, 6), day(2025, 1, 10),
		trainingOn(day(2025, 1, 8), "Squat Day"))
	week.FocusID = &focusID

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)
	assert.Empty(t, alertsOfType(alerts, AlertMissingFocus))
}

func TestAnalyze_CollisionEmitsOneWarningPerDate(t *testing.T) {
	now := day(2025, 2, 4)
	week := weekOf(day(2025, 2, 3), day(2025, 2, 7),
		trainingOn(day(2025, 2, 4), "First"),
		trainingOn(day(2025, 2, 4), "Second"),
		trainingOn(day(2025, 2, 6), "Solo"))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)

	collisions := alertsOfType(alerts, AlertDateCollision)
	require.Len(t, collisions, 1)
	assert.Equal(t, SeverityWarning, collisions[0].Severity)
	assert.Contains(t, collisions[0].Message, "2025-02-04")
	assert.Contains(t, collisions[0].Message, "2 trainings")
}

func TestAnalyze_CollisionAcrossWeeks(t *testing.T) {
	now := day(2025, 2, 4)
	// two overlapping weeks scheduling the same date
	a := weekOf(day(2025, 2, 3), day(2025, 2, 7),
		trainingOn(day(2025, 2, 5), "A"))
	b := weekOf(day(2025, 2, 3), day(2025, 2, 7),
		trainingOn(day(2025, 2, 5), "B"))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{a, b}), now)
	collisions := alertsOfType(alerts, AlertDateCollision)
	require.Len(t, collisions, 1)
	assert.Contains(t, collisions[0].Message, "2025-02-05")
}

func TestAnalyze_EmptyNonConditioningBlocks(t *testing.T) {
	now := day(2025, 1, 8)
	training := trainingOn(day(2025, 1, 8), "Squat Day")
	training.Blocks = []domain.TrainingBlock{
		{Type: domain.BlockWarmup},
		{Type: domain.BlockMain, Prescriptions: []domain.ExercisePrescription{{Sets: 5, Reps: "5"}}},
		{Type: domain.BlockConditioning}, // conditioning may stay empty
		{Type: domain.BlockAccessory},
	}
	week := weekOf(day(2025, 1, 6), day(2025, 1, 10), training)

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{week}), now)

	blocks := alertsOfType(alerts, AlertEmptyBlocks)
	require.Len(t, blocks, 1)
	assert.Equal(t, SeverityWarning, blocks[0].Severity)
	assert.Contains(t, blocks[0].Message, "Squat Day")
	assert.Contains(t, blocks[0].Message, "2 block(s)")
}

func TestAnalyze_SortsBySeverity(t *testing.T) {
	now := day(2025, 1, 8)
	// current empty week (critical + info) plus a future planned week
	// with a collision (warning)
	current := weekOf(day(2025, 1, 6), day(2025, 1, 10))
	future := weekOf(day(2025, 1, 13), day(2025, 1, 17),
		trainingOn(day(2025, 1, 14), "X"),
		trainingOn(day(2025, 1, 14), "Y"))

	alerts := Analyze(BuildSchedule([]domain.TrainingWeek{current, future}), now)
	require.NotEmpty(t, alerts)

	last := -1
	for _, a := range alerts {
		r := a.Severity.rank()
		assert.GreaterOrEqual(t, r, last, "alerts must be ordered critical, warning, info")
		if r > last {
			last = r
		}
	}
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
}
