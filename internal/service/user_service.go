package service

import (
	"context"
	"errors"
	"strings"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrInsufficientPermission = errors.New("insufficient permission to manage users")
	ErrUserAlreadyExists      = errors.New("user with this email already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidUserInput       = errors.New("email and password are required")
	ErrCannotModifyOwner      = errors.New("the workspace owner cannot be modified")
	ErrAdminScopeExceeded     = errors.New("admins can only manage viewer users")
	ErrHashingFailed          = errors.New("failed to hash password")
)

// UserService covers user provisioning and management within a workspace.
// Owners manage everyone in their workspace; admins only viewer-tier users.
type UserService interface {
	// Provision creates an auth account plus a viewer profile scoped to
	// the caller's workspace. If the profile insert fails the account is
	// rolled back so no orphaned identity remains.
	Provision(ctx context.Context, actor *domain.User, email, password, name string) (*domain.User, error)
	List(ctx context.Context, actor *domain.User) ([]domain.User, error)
	// Update renames a user and, for owners only, changes role between
	// admin and viewer.
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, name string, role *domain.Role) (*domain.User, error)
	// Deactivate flips the active flag off; the profile row remains.
	Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

// userService implements the UserService interface.
type userService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(accountRepo repository.AccountRepository, userRepo repository.UserRepository) UserService {
	return &userService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// Provision handles the user-provisioning flow.
func (s *userService) Provision(ctx context.Context, actor *domain.User, email, password, name string) (*domain.User, error) {
	if !actor.Capabilities().CanManageUsers {
		return nil, ErrInsufficientPermission
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidUserInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	workspace := actor.WorkspaceID()
	user := &domain.User{
		ID:      account.ID,
		Email:   email,
		Name:    name,
		Role:    domain.RoleViewer,
		OwnerID: &workspace,
		Active:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// roll the auth account back; a failed rollback is not
		// recoverable here and the original error matters more
		_ = s.accountRepo.Delete(ctx, account.ID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// List returns every profile in the caller's workspace.
func (s *userService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !actor.Capabilities().CanManageUsers {
		return nil, ErrInsufficientPermission
	}
	return s.userRepo.GetByWorkspace(ctx, actor.WorkspaceID())
}

// Update applies profile changes within the caller's management scope.
func (s *userService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, name string, role *domain.Role) (*domain.User, error) {
	target, err := s.manageable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		target.Name = name
	}
	if role != nil {
		// promotions and demotions are an owner-tier operation
		if !actor.Capabilities().CanEdit {
			return nil, ErrInsufficientPermission
		}
		if *role != domain.RoleAdmin && *role != domain.RoleViewer {
			return nil, ErrCannotModifyOwner
		}
		target.Role = *role
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return target, nil
}

// Deactivate disables a user's access without deleting history.
func (s *userService) Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	target, err := s.manageable(ctx, actor, id)
	if err != nil {
		return err
	}

	target.Active = false
	if err := s.userRepo.Update(ctx, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// manageable loads the target profile and verifies the actor may manage it:
// same workspace, never the owner, and admins only reach viewer users.
func (s *userService) manageable(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	caps := actor.Capabilities()
	if !caps.CanManageUsers {
		return nil, ErrInsufficientPermission
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if target.WorkspaceID() != actor.WorkspaceID() {
		return nil, ErrUserNotFound // do not leak users of other workspaces
	}
	if target.Role == domain.RoleOwner {
		return nil, ErrCannotModifyOwner
	}
	if caps.IsAdmin && target.Role != domain.RoleViewer {
		return nil, ErrAdminScopeExceeded
	}
	return target, nil
}
