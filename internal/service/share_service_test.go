package service

import (
	"context"
	"testing"
	"time"

	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shareFixture(t *testing.T) (ShareService, PlannerService, *repository.Repositories) {
	t.Helper()
	repos := seededRepos(t)
	planner := newPlannerService(repos)
	return NewShareService(planner, repos.Trainings), planner, repos
}

func TestShare_EnableAndResolve(t *testing.T) {
	svc, planner, repos := shareFixture(t)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	weeks, err := planner.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	trainingID := weeks[1].Trainings[0].ID

	training, err := svc.Enable(context.Background(), owner, trainingID, 0)
	require.NoError(t, err)
	require.NotNil(t, training.ShareToken)
	require.NotNil(t, training.ShareExpiresAt, "zero ttl applies the default lifetime")

	resolved, err := svc.Resolve(context.Background(), *training.ShareToken, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, trainingID, resolved.ID)
	require.NotEmpty(t, resolved.Blocks, "public view carries the nested blocks")
}

func TestShare_ViewerCannotEnable(t *testing.T) {
	svc, planner, repos := shareFixture(t)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	weeks, err := planner.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	trainingID := weeks[1].Trainings[0].ID

	_, err = svc.Enable(context.Background(), viewer, trainingID, 0)
	assert.ErrorIs(t, err, ErrEditNotAllowed)
}

func TestShare_ExpiredTokenNotAvailable(t *testing.T) {
	svc, planner, repos := shareFixture(t)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	weeks, err := planner.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	trainingID := weeks[1].Trainings[0].ID

	training, err := svc.Enable(context.Background(), owner, trainingID, time.Hour)
	require.NoError(t, err)

	// resolving after the expiry instant fails the same way as a bad token
	after := training.ShareExpiresAt.Add(time.Minute)
	_, err = svc.Resolve(context.Background(), *training.ShareToken, after)
	assert.ErrorIs(t, err, ErrShareNotAvailable)
}

func TestShare_DisableRevokesToken(t *testing.T) {
	svc, planner, repos := shareFixture(t)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	weeks, err := planner.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	trainingID := weeks[1].Trainings[0].ID

	training, err := svc.Enable(context.Background(), owner, trainingID, time.Hour)
	require.NoError(t, err)
	token := *training.ShareToken

	require.NoError(t, svc.Disable(context.Background(), owner, trainingID))

	_, err = svc.Resolve(context.Background(), token, time.Now().UTC())
	assert.ErrorIs(t, err, ErrShareNotAvailable)
}

func TestShare_UnknownTokenNotAvailable(t *testing.T) {
	svc, _, _ := shareFixture(t)

	_, err := svc.Resolve(context.Background(), "never-issued", time.Now().UTC())
	assert.ErrorIs(t, err, ErrShareNotAvailable)

	_, err = svc.Resolve(context.Background(), "", time.Now().UTC())
	assert.ErrorIs(t, err, ErrShareNotAvailable)
}
