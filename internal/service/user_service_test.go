package service

import (
	"context"
	"errors"
	"testing"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededRepos builds the mock provider with the demo workspace loaded.
func seededRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(store))
	return memory.NewRepositories(store)
}

func seededUser(t *testing.T, repos *repository.Repositories, email string) *domain.User {
	t.Helper()
	user, err := repos.Users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}

func TestProvision_OwnerCreatesViewer(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	user, err := svc.Provision(context.Background(), owner, "new.viewer@fitplan.local", "long-enough-pw", "New Viewer")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleViewer, user.Role)
	require.NotNil(t, user.OwnerID)
	assert.Equal(t, owner.ID, *user.OwnerID)
	assert.True(t, user.Active)

	// both sides of the identity exist
	account, err := repos.Accounts.GetByEmail(context.Background(), "new.viewer@fitplan.local")
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.ID)
}

func TestProvision_AdminCreatesViewerInOwnersWorkspace(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	admin := seededUser(t, repos, memory.SeedAdminEmail)

	user, err := svc.Provision(context.Background(), admin, "another@fitplan.local", "long-enough-pw", "")
	require.NoError(t, err)

	// scoped to the owner's workspace, not the admin's own id
	require.NotNil(t, user.OwnerID)
	assert.Equal(t, admin.WorkspaceID(), *user.OwnerID)
	assert.NotEqual(t, admin.ID, *user.OwnerID)
}

func TestProvision_ViewerDenied(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	_, err := svc.Provision(context.Background(), viewer, "sneaky@fitplan.local", "long-enough-pw", "")
	require.ErrorIs(t, err, ErrInsufficientPermission)

	// no auth account may exist after the denial
	_, err = repos.Accounts.GetByEmail(context.Background(), "sneaky@fitplan.local")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProvision_DuplicateEmail(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Provision(context.Background(), owner, memory.SeedViewerEmail, "long-enough-pw", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestProvision_MissingInput(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Provision(context.Background(), owner, "", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidUserInput)
	_, err = svc.Provision(context.Background(), owner, "x@y.z", "", "")
	assert.ErrorIs(t, err, ErrInvalidUserInput)
}

// failingUserRepo wraps a real repo but refuses profile creation, to
// exercise the account rollback path.
type failingUserRepo struct {
	repository.UserRepository
}

func (f *failingUserRepo) Create(ctx context.Context, user *domain.User) error {
	return errors.New("profile insert failed")
}

func TestProvision_RollsBackAccountOnProfileFailure(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, &failingUserRepo{UserRepository: repos.Users})
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Provision(context.Background(), owner, "orphan@fitplan.local", "long-enough-pw", "")
	require.Error(t, err)

	// the account created before the failure must be gone
	_, err = repos.Accounts.GetByEmail(context.Background(), "orphan@fitplan.local")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_AdminCannotTouchAdmins(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	admin := seededUser(t, repos, memory.SeedAdminEmail)

	// provision a second admin via owner promotion
	viewer, err := svc.Provision(context.Background(), owner, "promote.me@fitplan.local", "long-enough-pw", "")
	require.NoError(t, err)
	adminRole := domain.RoleAdmin
	_, err = svc.Update(context.Background(), owner, viewer.ID, "", &adminRole)
	require.NoError(t, err)

	// the seeded admin may not manage the new admin
	_, err = svc.Update(context.Background(), admin, viewer.ID, "Renamed", nil)
	assert.ErrorIs(t, err, ErrAdminScopeExceeded)
}

func TestUpdate_OwnerCannotBeModified(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	admin := seededUser(t, repos, memory.SeedAdminEmail)

	_, err := svc.Update(context.Background(), admin, owner.ID, "Hacked", nil)
	assert.ErrorIs(t, err, ErrCannotModifyOwner)
}

func TestUpdate_RoleChangeIsOwnerOnly(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	admin := seededUser(t, repos, memory.SeedAdminEmail)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	adminRole := domain.RoleAdmin
	_, err := svc.Update(context.Background(), admin, viewer.ID, "", &adminRole)
	assert.ErrorIs(t, err, ErrInsufficientPermission)
}

func TestDeactivate_KeepsProfileRow(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	require.NoError(t, svc.Deactivate(context.Background(), owner, viewer.ID))

	got, err := repos.Users.GetByID(context.Background(), viewer.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestList_ScopedToWorkspace(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	users, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, users, 3, "seeded workspace holds owner, admin, viewer")
	for _, u := range users {
		assert.Equal(t, owner.ID, u.WorkspaceID())
	}
}

func TestList_ViewerDenied(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	_, err := svc.List(context.Background(), viewer)
	assert.ErrorIs(t, err, ErrInsufficientPermission)
}

func TestManageable_UnknownUser(t *testing.T) {
	repos := seededRepos(t)
	svc := NewUserService(repos.Accounts, repos.Users)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	err := svc.Deactivate(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
