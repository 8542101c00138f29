package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testEnv is a fully wired router over the seeded mock provider plus
// the pieces tests poke at directly.
type testEnv struct {
	router *gin.Engine
	repos  *repository.Repositories
	auth   service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	require.NoError(t, memory.Seed(store))
	repos := memory.NewRepositories(store)

	authService := service.NewAuthService(repos.Accounts, repos.Users, "test-secret", time.Hour)
	userService := service.NewUserService(repos.Accounts, repos.Users)
	plannerService := service.NewPlannerService(repos.Weeks, repos.Trainings, repos.Focuses, repos.Exercises)
	exerciseService := service.NewExerciseService(repos.Exercises, repos.Patterns)
	shareService := service.NewShareService(plannerService, repos.Trainings)
	exportService := service.NewExportService(plannerService, nil)

	router := gin.New()
	SetupRoutes(router, authService, userService, plannerService, exerciseService, shareService, exportService)

	return &testEnv{router: router, repos: repos, auth: authService}
}

// tokenFor signs in a seeded user and returns their bearer token.
func (e *testEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, _, err := e.auth.Login(context.Background(), email, memory.SeedPassword)
	require.NoError(t, err)
	return token
}

// request performs an HTTP call against the test router.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
