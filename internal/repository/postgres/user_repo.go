package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, name, role, owner_id, active, created_at, updated_at`

// userRepository implements repository.UserRepository on Postgres.
type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users (id, email, name, role, owner_id, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		user.ID, user.Email, user.Name, user.Role, user.OwnerID, user.Active, user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1;`,
		id,
	).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1;`,
		email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// GetByWorkspace returns every profile scoped to the given owner, the owner
// included, ordered by creation time.
func (r *userRepository) GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.User, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+`
			FROM users
			WHERE id = $1 OR owner_id = $1
			ORDER BY created_at;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.OwnerID, &user.Active, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		users = append(users, user)
	}
	return users, mapError(rows.Err())
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET name = $1, role = $2, active = $3, updated_at = $4 WHERE id = $5;`,
		user.Name, user.Role, user.Active, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
