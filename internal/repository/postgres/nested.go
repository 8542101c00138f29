package postgres

import (
	"context"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Loaders for the nested parts of the week→training→block→prescription
// hierarchy. Both the week and the training repositories build their deep
// reads out of these, so the shape of a nested training is identical no
// matter which entry point loaded it.

// loadBlocks returns all blocks of the given trainings, grouped by training
// id, with prescriptions (and their exercises/movement patterns) attached.
// Blocks come back ordered by order_index, prescriptions likewise.
func loadBlocks(ctx context.Context, db *pgxpool.Pool, trainingIDs []uuid.UUID) (map[uuid.UUID][]domain.TrainingBlock, error) {
	if len(trainingIDs) == 0 {
		return map[uuid.UUID][]domain.TrainingBlock{}, nil
	}

	rows, err := db.Query(
		ctx,
		`SELECT id, training_id, block_type, label, order_index, default_rest_sec, created_at, updated_at
			FROM training_blocks
			WHERE training_id = ANY($1)
			ORDER BY training_id, order_index;`,
		trainingIDs,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	byTraining := make(map[uuid.UUID][]domain.TrainingBlock)
	var blockIDs []uuid.UUID
	for rows.Next() {
		var block domain.TrainingBlock
		if err := rows.Scan(&block.ID, &block.TrainingID, &block.Type, &block.Label, &block.OrderIndex, &block.DefaultRestSec, &block.CreatedAt, &block.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		byTraining[block.TrainingID] = append(byTraining[block.TrainingID], block)
		blockIDs = append(blockIDs, block.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	prescriptions, err := loadPrescriptions(ctx, db, blockIDs)
	if err != nil {
		return nil, err
	}
	for trainingID, blocks := range byTraining {
		for i := range blocks {
			blocks[i].Prescriptions = prescriptions[blocks[i].ID]
		}
		byTraining[trainingID] = blocks
	}
	return byTraining, nil
}

// loadPrescriptions returns the prescriptions of the given blocks, grouped
// by block id, each with its exercise and movement pattern joined in.
func loadPrescriptions(ctx context.Context, db *pgxpool.Pool, blockIDs []uuid.UUID) (map[uuid.UUID][]domain.ExercisePrescription, error) {
	if len(blockIDs) == 0 {
		return map[uuid.UUID][]domain.ExercisePrescription{}, nil
	}

	rows, err := db.Query(
		ctx,
		`SELECT
				p.id, p.block_id, p.exercise_id, p.order_index, p.sets, p.reps, p.load,
				p.rest_sec, p.rpe, p.notes, p.created_at, p.updated_at,
				e.id, e.owner_id, e.name, e.instructions, e.notes, e.movement_pattern_id, e.created_at, e.updated_at,
				mp.id, mp.name, mp.description
			FROM exercise_prescriptions p
			JOIN exercises e ON e.id = p.exercise_id
			LEFT JOIN movement_patterns mp ON mp.id = e.movement_pattern_id
			WHERE p.block_id = ANY($1)
			ORDER BY p.block_id, p.order_index;`,
		blockIDs,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	byBlock := make(map[uuid.UUID][]domain.ExercisePrescription)
	for rows.Next() {
		var (
			p                        domain.ExercisePrescription
			exercise                 domain.Exercise
			patternID                *uuid.UUID
			patternName, patternDesc *string
		)
		if err := rows.Scan(
			&p.ID, &p.BlockID, &p.ExerciseID, &p.OrderIndex, &p.Sets, &p.Reps, &p.Load,
			&p.RestSec, &p.RPE, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
			&exercise.ID, &exercise.OwnerID, &exercise.Name, &exercise.Instructions, &exercise.Notes, &exercise.MovementPatternID, &exercise.CreatedAt, &exercise.UpdatedAt,
			&patternID, &patternName, &patternDesc,
		); err != nil {
			return nil, mapError(err)
		}
		if patternID != nil {
			exercise.MovementPattern = &domain.MovementPattern{
				ID:          *patternID,
				OwnerID:     exercise.OwnerID,
				Name:        derefString(patternName),
				Description: derefString(patternDesc),
			}
		}
		p.Exercise = &exercise
		byBlock[p.BlockID] = append(byBlock[p.BlockID], p)
	}
	return byBlock, mapError(rows.Err())
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanTraining(row interface{ Scan(dest ...any) error }) (*domain.Training, error) {
	var t domain.Training
	err := row.Scan(
		&t.ID, &t.WeekID, &t.ScheduledDate, &t.Title, &t.Description, &t.Intensity,
		&t.EstimatedDurationMin, &t.ShareStatus, &t.ShareToken, &t.ShareExpiresAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const trainingColumns = `id, week_id, scheduled_date, title, description, intensity,
	estimated_duration_min, share_status, share_token, share_expires_at, created_at, updated_at`
