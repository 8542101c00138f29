package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// exerciseRepository implements repository.ExerciseRepository on Postgres.
type exerciseRepository struct {
	db *pgxpool.Pool
}

func NewExerciseRepository(db *pgxpool.Pool) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO exercises (id, owner_id, name, instructions, notes, movement_pattern_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		exercise.ID, exercise.OwnerID, exercise.Name, exercise.Instructions,
		exercise.Notes, exercise.MovementPatternID, exercise.CreatedAt, exercise.UpdatedAt,
	)
	return mapError(err)
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var (
		exercise                 domain.Exercise
		patternName, patternDesc *string
	)
	err := r.db.QueryRow(
		ctx,
		`SELECT e.id, e.owner_id, e.name, e.instructions, e.notes, e.movement_pattern_id,
				e.created_at, e.updated_at, mp.name, mp.description
			FROM exercises e
			LEFT JOIN movement_patterns mp ON mp.id = e.movement_pattern_id
			WHERE e.id = $1;`,
		id,
	).Scan(&exercise.ID, &exercise.OwnerID, &exercise.Name, &exercise.Instructions, &exercise.Notes,
		&exercise.MovementPatternID, &exercise.CreatedAt, &exercise.UpdatedAt, &patternName, &patternDesc)
	if err != nil {
		return nil, mapError(err)
	}
	if exercise.MovementPatternID != nil {
		exercise.MovementPattern = &domain.MovementPattern{
			ID:          *exercise.MovementPatternID,
			OwnerID:     exercise.OwnerID,
			Name:        derefString(patternName),
			Description: derefString(patternDesc),
		}
	}
	return &exercise, nil
}

func (r *exerciseRepository) GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.Exercise, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT e.id, e.owner_id, e.name, e.instructions, e.notes, e.movement_pattern_id,
				e.created_at, e.updated_at, mp.name, mp.description
			FROM exercises e
			LEFT JOIN movement_patterns mp ON mp.id = e.movement_pattern_id
			WHERE e.owner_id = $1
			ORDER BY e.name;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var (
			exercise                 domain.Exercise
			patternName, patternDesc *string
		)
		if err := rows.Scan(&exercise.ID, &exercise.OwnerID, &exercise.Name, &exercise.Instructions, &exercise.Notes,
			&exercise.MovementPatternID, &exercise.CreatedAt, &exercise.UpdatedAt, &patternName, &patternDesc); err != nil {
			return nil, mapError(err)
		}
		if exercise.MovementPatternID != nil {
			exercise.MovementPattern = &domain.MovementPattern{
				ID:          *exercise.MovementPatternID,
				OwnerID:     exercise.OwnerID,
				Name:        derefString(patternName),
				Description: derefString(patternDesc),
			}
		}
		exercises = append(exercises, exercise)
	}
	return exercises, mapError(rows.Err())
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	exercise.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercises
			SET name = $1, instructions = $2, notes = $3, movement_pattern_id = $4, updated_at = $5
			WHERE id = $6;`,
		exercise.Name, exercise.Instructions, exercise.Notes, exercise.MovementPatternID,
		exercise.UpdatedAt, exercise.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
