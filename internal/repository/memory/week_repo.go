package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
)

// weekRepository implements repository.WeekRepository in memory.
type weekRepository struct {
	store *Store
}

func (r *weekRepository) Create(_ context.Context, week *domain.TrainingWeek) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if week.ID == uuid.Nil {
		week.ID = uuid.New()
	}
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	stored := *week
	stored.Focus = nil
	stored.Trainings = nil
	r.store.weeks = append(r.store.weeks, stored)
	return nil
}

func (r *weekRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.TrainingWeek, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, week := range r.store.weeks {
		if week.ID == id {
			found := week
			return &found, nil
		}
	}
	return nil, notFound("training week", id)
}

func (r *weekRepository) GetByWorkspace(_ context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var weeks []domain.TrainingWeek
	for _, week := range r.store.weeks {
		if week.OwnerID == ownerID {
			weeks = append(weeks, week)
		}
	}
	sortWeeks(weeks)
	return weeks, nil
}

// GetWeeksWithTrainings mirrors the live gateway's deep read: weeks ordered
// by start date, trainings by scheduled date, blocks and prescriptions by
// order index, with focus/exercise/pattern references resolved.
func (r *weekRepository) GetWeeksWithTrainings(_ context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var weeks []domain.TrainingWeek
	for _, week := range r.store.weeks {
		if week.OwnerID != ownerID {
			continue
		}
		nested := week
		if nested.FocusID != nil {
			if focus := r.store.findFocus(*nested.FocusID); focus != nil {
				found := *focus
				nested.Focus = &found
			}
		}
		var trainings []domain.Training
		for _, training := range r.store.trainings {
			if training.WeekID == week.ID {
				trainings = append(trainings, r.store.assembleTraining(training))
			}
		}
		sort.SliceStable(trainings, func(i, j int) bool {
			return trainings[i].ScheduledDate.Before(trainings[j].ScheduledDate)
		})
		nested.Trainings = trainings
		weeks = append(weeks, nested)
	}
	sortWeeks(weeks)
	return weeks, nil
}

func (r *weekRepository) Update(_ context.Context, week *domain.TrainingWeek) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.weeks {
		if r.store.weeks[i].ID == week.ID {
			week.UpdatedAt = time.Now().UTC()
			week.CreatedAt = r.store.weeks[i].CreatedAt
			stored := *week
			stored.Focus = nil
			stored.Trainings = nil
			r.store.weeks[i] = stored
			return nil
		}
	}
	return notFound("training week", week.ID)
}

func (r *weekRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.weeks {
		if r.store.weeks[i].ID == id {
			r.store.weeks = append(r.store.weeks[:i], r.store.weeks[i+1:]...)
			r.store.dropTrainingsOfWeek(id)
			return nil
		}
	}
	return notFound("training week", id)
}

func sortWeeks(weeks []domain.TrainingWeek) {
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].StartDate.Before(weeks[j].StartDate)
	})
}

// dropTrainingsOfWeek cascades a week deletion the way the relational
// schema's foreign keys would.
func (s *Store) dropTrainingsOfWeek(weekID uuid.UUID) {
	var remaining []domain.Training
	for _, training := range s.trainings {
		if training.WeekID == weekID {
			s.dropBlocksOfTraining(training.ID)
			continue
		}
		remaining = append(remaining, training)
	}
	s.trainings = remaining
}

func (s *Store) dropBlocksOfTraining(trainingID uuid.UUID) {
	var remaining []domain.TrainingBlock
	for _, block := range s.blocks {
		if block.TrainingID == trainingID {
			s.dropPrescriptionsOfBlock(block.ID)
			continue
		}
		remaining = append(remaining, block)
	}
	s.blocks = remaining
}

func (s *Store) dropPrescriptionsOfBlock(blockID uuid.UUID) {
	var remaining []domain.ExercisePrescription
	for _, p := range s.prescriptions {
		if p.BlockID == blockID {
			continue
		}
		remaining = append(remaining, p)
	}
	s.prescriptions = remaining
}
