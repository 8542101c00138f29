package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// userRepository implements repository.UserRepository in memory.
type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return &repository.Error{
				Code:    repository.CodeDuplicate,
				Message: "user with email " + user.Email + " already exists",
			}
		}
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, notFound("user", id)
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByWorkspace(_ context.Context, ownerID uuid.UUID) ([]domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var users []domain.User
	for _, user := range r.store.users {
		if user.ID == ownerID || (user.OwnerID != nil && *user.OwnerID == ownerID) {
			users = append(users, user)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.users {
		if r.store.users[i].ID == user.ID {
			user.UpdatedAt = time.Now().UTC()
			user.CreatedAt = r.store.users[i].CreatedAt
			r.store.users[i] = *user
			return nil
		}
	}
	return notFound("user", user.ID)
}
