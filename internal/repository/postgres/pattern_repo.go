package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// movementPatternRepository implements repository.MovementPatternRepository
// on Postgres.
type movementPatternRepository struct {
	db *pgxpool.Pool
}

func NewMovementPatternRepository(db *pgxpool.Pool) repository.MovementPatternRepository {
	return &movementPatternRepository{db: db}
}

func (r *movementPatternRepository) Create(ctx context.Context, pattern *domain.MovementPattern) error {
	if pattern.ID == uuid.Nil {
		pattern.ID = uuid.New()
	}
	now := time.Now().UTC()
	pattern.CreatedAt = now
	pattern.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO movement_patterns (id, owner_id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		pattern.ID, pattern.OwnerID, pattern.Name, pattern.Description, pattern.CreatedAt, pattern.UpdatedAt,
	)
	return mapError(err)
}

func (r *movementPatternRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MovementPattern, error) {
	var pattern domain.MovementPattern
	err := r.db.QueryRow(
		ctx,
		`SELECT id, owner_id, name, description, created_at, updated_at
			FROM movement_patterns WHERE id = $1;`,
		id,
	).Scan(&pattern.ID, &pattern.OwnerID, &pattern.Name, &pattern.Description, &pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &pattern, nil
}

func (r *movementPatternRepository) GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.MovementPattern, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, name, description, created_at, updated_at
			FROM movement_patterns WHERE owner_id = $1 ORDER BY name;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var patterns []domain.MovementPattern
	for rows.Next() {
		var pattern domain.MovementPattern
		if err := rows.Scan(&pattern.ID, &pattern.OwnerID, &pattern.Name, &pattern.Description,
			&pattern.CreatedAt, &pattern.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		patterns = append(patterns, pattern)
	}
	return patterns, mapError(rows.Err())
}

func (r *movementPatternRepository) Update(ctx context.Context, pattern *domain.MovementPattern) error {
	pattern.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE movement_patterns SET name = $1, description = $2, updated_at = $3 WHERE id = $4;`,
		pattern.Name, pattern.Description, pattern.UpdatedAt, pattern.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *movementPatternRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movement_patterns WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
