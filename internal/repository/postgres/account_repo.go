package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountRepository implements repository.AccountRepository on Postgres.
type accountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4);`,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt,
	)
	return mapError(err)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1;`,
		email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1;`,
		id,
	).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
