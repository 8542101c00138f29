package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// trainingRepository implements repository.TrainingRepository on Postgres.
type trainingRepository struct {
	db *pgxpool.Pool
}

func NewTrainingRepository(db *pgxpool.Pool) repository.TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) Create(ctx context.Context, training *domain.Training) error {
	if training.ID == uuid.Nil {
		training.ID = uuid.New()
	}
	if training.ShareStatus == "" {
		training.ShareStatus = domain.SharePrivate
	}
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO trainings
			(id, week_id, scheduled_date, title, description, intensity, estimated_duration_min,
			 share_status, share_token, share_expires_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		training.ID, training.WeekID, training.ScheduledDate, training.Title, training.Description,
		training.Intensity, training.EstimatedDurationMin, training.ShareStatus,
		training.ShareToken, training.ShareExpiresAt, training.CreatedAt, training.UpdatedAt,
	)
	return mapError(err)
}

// GetByID returns the training with its blocks and prescriptions nested.
func (r *trainingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Training, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE id = $1;`,
		id,
	)
	training, err := scanTraining(row)
	if err != nil {
		return nil, mapError(err)
	}
	return r.withBlocks(ctx, training)
}

func (r *trainingRepository) GetByWeek(ctx context.Context, weekID uuid.UUID) ([]domain.Training, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE week_id = $1 ORDER BY scheduled_date, created_at;`,
		weekID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var trainings []domain.Training
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, mapError(err)
		}
		trainings = append(trainings, *training)
	}
	return trainings, mapError(rows.Err())
}

func (r *trainingRepository) GetByShareToken(ctx context.Context, token string) (*domain.Training, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE share_token = $1;`,
		token,
	)
	training, err := scanTraining(row)
	if err != nil {
		return nil, mapError(err)
	}
	return r.withBlocks(ctx, training)
}

func (r *trainingRepository) withBlocks(ctx context.Context, training *domain.Training) (*domain.Training, error) {
	blocks, err := loadBlocks(ctx, r.db, []uuid.UUID{training.ID})
	if err != nil {
		return nil, err
	}
	training.Blocks = blocks[training.ID]
	return training, nil
}

func (r *trainingRepository) Update(ctx context.Context, training *domain.Training) error {
	training.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE trainings
			SET scheduled_date = $1, title = $2, description = $3, intensity = $4,
				estimated_duration_min = $5, share_status = $6, share_token = $7,
				share_expires_at = $8, updated_at = $9
			WHERE id = $10;`,
		training.ScheduledDate, training.Title, training.Description, training.Intensity,
		training.EstimatedDurationMin, training.ShareStatus, training.ShareToken,
		training.ShareExpiresAt, training.UpdatedAt, training.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *trainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainings WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// === Blocks ===

func (r *trainingRepository) AddBlock(ctx context.Context, block *domain.TrainingBlock) error {
	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	now := time.Now().UTC()
	block.CreatedAt = now
	block.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO training_blocks
			(id, training_id, block_type, label, order_index, default_rest_sec, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		block.ID, block.TrainingID, block.Type, block.Label, block.OrderIndex,
		block.DefaultRestSec, block.CreatedAt, block.UpdatedAt,
	)
	return mapError(err)
}

func (r *trainingRepository) UpdateBlock(ctx context.Context, block *domain.TrainingBlock) error {
	block.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_blocks
			SET block_type = $1, label = $2, order_index = $3, default_rest_sec = $4, updated_at = $5
			WHERE id = $6;`,
		block.Type, block.Label, block.OrderIndex, block.DefaultRestSec, block.UpdatedAt, block.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *trainingRepository) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM training_blocks WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// === Prescriptions ===

func (r *trainingRepository) AddPrescription(ctx context.Context, p *domain.ExercisePrescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise_prescriptions
			(id, block_id, exercise_id, order_index, sets, reps, load, rest_sec, rpe, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		p.ID, p.BlockID, p.ExerciseID, p.OrderIndex, p.Sets, p.Reps, p.Load,
		p.RestSec, p.RPE, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *trainingRepository) UpdatePrescription(ctx context.Context, p *domain.ExercisePrescription) error {
	p.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise_prescriptions
			SET exercise_id = $1, order_index = $2, sets = $3, reps = $4, load = $5,
				rest_sec = $6, rpe = $7, notes = $8, updated_at = $9
			WHERE id = $10;`,
		p.ExerciseID, p.OrderIndex, p.Sets, p.Reps, p.Load, p.RestSec, p.RPE, p.Notes, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *trainingRepository) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_prescriptions WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
