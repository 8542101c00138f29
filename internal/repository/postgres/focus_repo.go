package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// weekFocusRepository implements repository.WeekFocusRepository on Postgres.
type weekFocusRepository struct {
	db *pgxpool.Pool
}

func NewWeekFocusRepository(db *pgxpool.Pool) repository.WeekFocusRepository {
	return &weekFocusRepository{db: db}
}

func (r *weekFocusRepository) Create(ctx context.Context, focus *domain.WeekFocus) error {
	if focus.ID == uuid.Nil {
		focus.ID = uuid.New()
	}
	now := time.Now().UTC()
	focus.CreatedAt = now
	focus.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO week_focuses (id, owner_id, name, description, color, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		focus.ID, focus.OwnerID, focus.Name, focus.Description, focus.Color, focus.CreatedAt, focus.UpdatedAt,
	)
	return mapError(err)
}

func (r *weekFocusRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WeekFocus, error) {
	var focus domain.WeekFocus
	err := r.db.QueryRow(
		ctx,
		`SELECT id, owner_id, name, description, color, created_at, updated_at
			FROM week_focuses WHERE id = $1;`,
		id,
	).Scan(&focus.ID, &focus.OwnerID, &focus.Name, &focus.Description, &focus.Color, &focus.CreatedAt, &focus.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &focus, nil
}

func (r *weekFocusRepository) GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.WeekFocus, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, owner_id, name, description, color, created_at, updated_at
			FROM week_focuses WHERE owner_id = $1 ORDER BY name;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var focuses []domain.WeekFocus
	for rows.Next() {
		var focus domain.WeekFocus
		if err := rows.Scan(&focus.ID, &focus.OwnerID, &focus.Name, &focus.Description, &focus.Color, &focus.CreatedAt, &focus.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		focuses = append(focuses, focus)
	}
	return focuses, mapError(rows.Err())
}

func (r *weekFocusRepository) Update(ctx context.Context, focus *domain.WeekFocus) error {
	focus.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE week_focuses SET name = $1, description = $2, color = $3, updated_at = $4 WHERE id = $5;`,
		focus.Name, focus.Description, focus.Color, focus.UpdatedAt, focus.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *weekFocusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM week_focuses WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
