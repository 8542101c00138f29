package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() []domain.TrainingWeek {
	rpe := 8.5
	squat := &domain.Exercise{ID: uuid.New(), Name: "Back Squat"}
	return []domain.TrainingWeek{
		{
			ID:        uuid.New(),
			StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			Status:    domain.WeekStatusActive,
			Focus:     &domain.WeekFocus{Name: "Hypertrophy"},
			Trainings: []domain.Training{
				{
					ScheduledDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
					Title:         "Lower Body",
					Intensity:     domain.IntensityHigh,
					Blocks: []domain.TrainingBlock{
						{
							Type:           domain.BlockMain,
							Label:          "Main Lifts",
							DefaultRestSec: 180,
							Prescriptions: []domain.ExercisePrescription{
								{
									ExerciseID: squat.ID,
									Sets:       5,
									Reps:       "5",
									Load:       "100kg",
									RPE:        &rpe,
									Exercise:   squat,
								},
								{
									ExerciseID: squat.ID,
									Sets:       3,
									Reps:       "8-10",
									RestSec:    90,
									Exercise:   squat,
								},
							},
						},
						{Type: domain.BlockConditioning, Label: "Bike Sprints"},
					},
				},
			},
		},
	}
}

func TestWriteCSV_RowPerPrescription(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePlan()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per prescription")

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "2", first[0], "week number from day-of-year arithmetic")
	assert.Equal(t, "2025-01-06", first[1])
	assert.Equal(t, "Hypertrophy", first[4])
	assert.Equal(t, "Lower Body", first[6])
	assert.Equal(t, "main", first[8])
	assert.Equal(t, "Back Squat", first[10])
	assert.Equal(t, "5", first[11])
	assert.Equal(t, "100kg", first[13])
	assert.Equal(t, "180", first[14], "block default rest applies when unset")
	assert.Equal(t, "8.5", first[15])

	second := records[2]
	assert.Equal(t, "8-10", second[12])
	assert.Equal(t, "90", second[14], "explicit rest wins over block default")
	assert.Equal(t, "", second[15])
}

func TestWriteCSV_EmptyPlanHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

func TestWriteCSV_NoPersonalFields(t *testing.T) {
	for _, col := range csvHeader {
		assert.NotContains(t, col, "email")
		assert.NotContains(t, col, "name")
		assert.NotContains(t, col, "user")
	}
}

func TestWriteDocument_HierarchicalSections(t *testing.T) {
	doc := WriteDocument(samplePlan())

	assert.Contains(t, doc, "TRAINING PLAN")
	assert.Contains(t, doc, "WEEK 2: 2025-01-06 to 2025-01-10 [Active]")
	assert.Contains(t, doc, "Focus: Hypertrophy")
	assert.Contains(t, doc, "Wednesday 2025-01-08 - Lower Body")
	assert.Contains(t, doc, "[Main Lifts]")
	assert.Contains(t, doc, "Back Squat: 5x5 @ 100kg RPE 8.5 (rest 180s)")
	assert.Contains(t, doc, "[Bike Sprints]")
}

func TestWriteDocument_EmptyPlan(t *testing.T) {
	doc := WriteDocument(nil)
	assert.Contains(t, doc, "TRAINING PLAN")
	assert.NotContains(t, doc, "WEEK")
}

func TestWriteDocument_WeekWithoutTrainings(t *testing.T) {
	weeks := []domain.TrainingWeek{{
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:    domain.WeekStatusDraft,
	}}
	doc := WriteDocument(weeks)
	assert.Contains(t, doc, "(no trainings scheduled)")
}
