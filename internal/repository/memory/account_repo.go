package memory

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// accountRepository implements repository.AccountRepository in memory.
type accountRepository struct {
	store *Store
}

func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.accounts {
		if existing.Email == account.Email {
			return &repository.Error{
				Code:    repository.CodeDuplicate,
				Message: "account with email " + account.Email + " already exists",
			}
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	r.store.accounts = append(r.store.accounts, *account)
	return nil
}

func (r *accountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *accountRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if account.ID == id {
			found := account
			return &found, nil
		}
	}
	return nil, notFound("account", id)
}

func (r *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, account := range r.store.accounts {
		if account.ID == id {
			r.store.accounts = append(r.store.accounts[:i], r.store.accounts[i+1:]...)
			return nil
		}
	}
	return notFound("account", id)
}
