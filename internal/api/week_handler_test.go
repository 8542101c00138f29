package api

import (
	"net/http"
	"testing"

	"fitplan/training-planner/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEndpoint_WeekdayGrid(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedViewerEmail)

	rec := env.request(t, http.MethodGet, "/api/v1/weeks/schedule", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var schedules []struct {
		WeekNumber int `json:"weekNumber"`
		Days       []*struct {
			Title string `json:"title"`
		} `json:"days"`
	}
	decodeJSON(t, rec, &schedules)
	require.Len(t, schedules, 3)
	for _, s := range schedules {
		assert.Len(t, s.Days, 5, "always five weekday slots")
		assert.Positive(t, s.WeekNumber)
	}

	// seeded active week trains Monday, Wednesday and Friday
	active := schedules[1]
	assert.NotNil(t, active.Days[0])
	assert.Nil(t, active.Days[1])
	assert.NotNil(t, active.Days[2])
	assert.Nil(t, active.Days[3])
	assert.NotNil(t, active.Days[4])
}

func TestAlertsEndpoint_DraftWeekSurfaces(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedViewerEmail)

	rec := env.request(t, http.MethodGet, "/api/v1/weeks/alerts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Alerts []struct {
			Severity string `json:"severity"`
			Type     string `json:"type"`
		} `json:"alerts"`
	}
	decodeJSON(t, rec, &body)

	// the seeded upcoming draft week is empty and unfocused
	types := map[string]bool{}
	for _, a := range body.Alerts {
		types[a.Type] = true
	}
	assert.True(t, types["empty_week"], "empty upcoming week must alert")
	assert.True(t, types["missing_focus"], "unfocused upcoming week must alert")
}

func TestWeekMutations_ViewerForbidden(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.tokenFor(t, memory.SeedViewerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/weeks", viewer, WeekRequest{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-09",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWeekCreate_BadDatesRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.tokenFor(t, memory.SeedOwnerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/weeks", owner, WeekRequest{
		StartDate: "05/01/2026",
		EndDate:   "2026-01-09",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/v1/weeks", owner, WeekRequest{
		StartDate: "2026-01-09",
		EndDate:   "2026-01-05",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrainingCreate_OutsideWeekRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.tokenFor(t, memory.SeedOwnerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/weeks", owner, WeekRequest{
		StartDate: "2026-01-05",
		EndDate:   "2026-01-09",
		Status:    "draft",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var week struct {
		ID string `json:"id"`
	}
	decodeJSON(t, rec, &week)

	rec = env.request(t, http.MethodPost, "/api/v1/weeks/"+week.ID+"/trainings", owner, TrainingRequest{
		ScheduledDate: "2026-01-12",
		Title:         "Stray",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
