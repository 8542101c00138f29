package postgres

import (
	"context"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const weekColumns = `w.id, w.owner_id, w.created_by, w.start_date, w.end_date, w.status,
	w.focus_id, w.notes, w.created_at, w.updated_at`

// weekRepository implements repository.WeekRepository on Postgres.
type weekRepository struct {
	db *pgxpool.Pool
}

func NewWeekRepository(db *pgxpool.Pool) repository.WeekRepository {
	return &weekRepository{db: db}
}

func (r *weekRepository) Create(ctx context.Context, week *domain.TrainingWeek) error {
	if week.ID == uuid.Nil {
		week.ID = uuid.New()
	}
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO training_weeks
			(id, owner_id, created_by, start_date, end_date, status, focus_id, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		week.ID, week.OwnerID, week.CreatedBy, week.StartDate, week.EndDate,
		week.Status, week.FocusID, week.Notes, week.CreatedAt, week.UpdatedAt,
	)
	return mapError(err)
}

func (r *weekRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingWeek, error) {
	var week domain.TrainingWeek
	err := r.db.QueryRow(
		ctx,
		`SELECT `+weekColumns+` FROM training_weeks w WHERE w.id = $1;`,
		id,
	).Scan(&week.ID, &week.OwnerID, &week.CreatedBy, &week.StartDate, &week.EndDate,
		&week.Status, &week.FocusID, &week.Notes, &week.CreatedAt, &week.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &week, nil
}

func (r *weekRepository) GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+weekColumns+` FROM training_weeks w WHERE w.owner_id = $1 ORDER BY w.start_date;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var weeks []domain.TrainingWeek
	for rows.Next() {
		var week domain.TrainingWeek
		if err := rows.Scan(&week.ID, &week.OwnerID, &week.CreatedBy, &week.StartDate, &week.EndDate,
			&week.Status, &week.FocusID, &week.Notes, &week.CreatedAt, &week.UpdatedAt); err != nil {
			return nil, mapError(err)
		}
		weeks = append(weeks, week)
	}
	return weeks, mapError(rows.Err())
}

// GetWeeksWithTrainings is the deep relational read: weeks ordered by start
// date, each with its focus and its trainings (ordered by scheduled date),
// each training with blocks, prescriptions, exercises and movement patterns
// nested. The flat row sets are stitched back into the hierarchy here.
func (r *weekRepository) GetWeeksWithTrainings(ctx context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+weekColumns+`,
				f.id, f.name, f.description, f.color
			FROM training_weeks w
			LEFT JOIN week_focuses f ON f.id = w.focus_id
			WHERE w.owner_id = $1
			ORDER BY w.start_date;`,
		ownerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var (
		weeks   []domain.TrainingWeek
		weekIDs []uuid.UUID
	)
	for rows.Next() {
		var (
			week                             domain.TrainingWeek
			focusID                          *uuid.UUID
			focusName, focusDesc, focusColor *string
		)
		if err := rows.Scan(&week.ID, &week.OwnerID, &week.CreatedBy, &week.StartDate, &week.EndDate,
			&week.Status, &week.FocusID, &week.Notes, &week.CreatedAt, &week.UpdatedAt,
			&focusID, &focusName, &focusDesc, &focusColor); err != nil {
			return nil, mapError(err)
		}
		if focusID != nil {
			week.Focus = &domain.WeekFocus{
				ID:          *focusID,
				OwnerID:     week.OwnerID,
				Name:        derefString(focusName),
				Description: derefString(focusDesc),
				Color:       derefString(focusColor),
			}
		}
		weeks = append(weeks, week)
		weekIDs = append(weekIDs, week.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	if len(weeks) == 0 {
		return weeks, nil
	}

	trainingRows, err := r.db.Query(
		ctx,
		`SELECT `+trainingColumns+`
			FROM trainings
			WHERE week_id = ANY($1)
			ORDER BY scheduled_date, created_at;`,
		weekIDs,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer trainingRows.Close()

	trainingsByWeek := make(map[uuid.UUID][]domain.Training)
	var trainingIDs []uuid.UUID
	for trainingRows.Next() {
		training, err := scanTraining(trainingRows)
		if err != nil {
			return nil, mapError(err)
		}
		trainingsByWeek[training.WeekID] = append(trainingsByWeek[training.WeekID], *training)
		trainingIDs = append(trainingIDs, training.ID)
	}
	if err := trainingRows.Err(); err != nil {
		return nil, mapError(err)
	}

	blocksByTraining, err := loadBlocks(ctx, r.db, trainingIDs)
	if err != nil {
		return nil, err
	}

	for wi := range weeks {
		trainings := trainingsByWeek[weeks[wi].ID]
		for ti := range trainings {
			trainings[ti].Blocks = blocksByTraining[trainings[ti].ID]
		}
		weeks[wi].Trainings = trainings
	}
	return weeks, nil
}

func (r *weekRepository) Update(ctx context.Context, week *domain.TrainingWeek) error {
	week.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_weeks
			SET start_date = $1, end_date = $2, status = $3, focus_id = $4, notes = $5, updated_at = $6
			WHERE id = $7;`,
		week.StartDate, week.EndDate, week.Status, week.FocusID, week.Notes, week.UpdatedAt, week.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *weekRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM training_weeks WHERE id = $1;`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
