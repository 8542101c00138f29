package api

import (
	"context"
	"net/http"
	"testing"

	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionEndpoint_OwnerSucceeds(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedOwnerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/users", token, ProvisionRequest{
		Email:    "fresh.viewer@fitplan.local",
		Password: "long-enough-pw",
		Name:     "Fresh Viewer",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProvisionResponse
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.UserID)
	assert.Empty(t, resp.Error)
}

func TestProvisionEndpoint_ViewerGets400AndNoAccount(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedViewerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/users", token, ProvisionRequest{
		Email:    "sneaky@fitplan.local",
		Password: "long-enough-pw",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ProvisionResponse
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "insufficient permission")

	// the denial must not leave an auth account behind
	_, err := env.repos.Accounts.GetByEmail(context.Background(), "sneaky@fitplan.local")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProvisionEndpoint_DuplicateEmailGets400(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedOwnerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/users", token, ProvisionRequest{
		Email:    memory.SeedViewerEmail,
		Password: "long-enough-pw",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ProvisionResponse
	decodeJSON(t, rec, &resp)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "already exists")
}

func TestProvisionEndpoint_ShortPasswordGets400(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedOwnerEmail)

	rec := env.request(t, http.MethodPost, "/api/v1/users", token, ProvisionRequest{
		Email:    "short@fitplan.local",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers_ViewerForbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedViewerEmail)

	rec := env.request(t, http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListUsers_AdminSeesWorkspace(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedAdminEmail)

	rec := env.request(t, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []UserResponse
	decodeJSON(t, rec, &users)
	assert.Len(t, users, 3)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_GarbageTokenSignalsSessionExpired(t *testing.T) {
	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decodeJSON(t, rec, &body)
	assert.Equal(t, SessionExpiredCode, body["code"])
}

func TestMe_ReturnsCapabilities(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, memory.SeedAdminEmail)

	rec := env.request(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User         UserResponse         `json:"user"`
		Capabilities CapabilitiesResponse `json:"capabilities"`
	}
	decodeJSON(t, rec, &body)
	assert.True(t, body.Capabilities.IsAdmin)
	assert.True(t, body.Capabilities.CanManageUsers)
	assert.False(t, body.Capabilities.CanEdit)
}
