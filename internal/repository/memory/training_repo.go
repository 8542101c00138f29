package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// trainingRepository implements repository.TrainingRepository in memory.
type trainingRepository struct {
	store *Store
}

func (r *trainingRepository) Create(_ context.Context, training *domain.Training) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if training.ID == uuid.Nil {
		training.ID = uuid.New()
	}
	if training.ShareStatus == "" {
		training.ShareStatus = domain.SharePrivate
	}
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now

	stored := *training
	stored.Blocks = nil
	r.store.trainings = append(r.store.trainings, stored)
	return nil
}

func (r *trainingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Training, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, training := range r.store.trainings {
		if training.ID == id {
			nested := r.store.assembleTraining(training)
			return &nested, nil
		}
	}
	return nil, notFound("training", id)
}

func (r *trainingRepository) GetByWeek(_ context.Context, weekID uuid.UUID) ([]domain.Training, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var trainings []domain.Training
	for _, training := range r.store.trainings {
		if training.WeekID == weekID {
			trainings = append(trainings, training)
		}
	}
	sort.SliceStable(trainings, func(i, j int) bool {
		return trainings[i].ScheduledDate.Before(trainings[j].ScheduledDate)
	})
	return trainings, nil
}

func (r *trainingRepository) GetByShareToken(_ context.Context, token string) (*domain.Training, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, training := range r.store.trainings {
		if training.ShareToken != nil && *training.ShareToken == token {
			nested := r.store.assembleTraining(training)
			return &nested, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *trainingRepository) Update(_ context.Context, training *domain.Training) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.trainings {
		if r.store.trainings[i].ID == training.ID {
			training.UpdatedAt = time.Now().UTC()
			training.CreatedAt = r.store.trainings[i].CreatedAt
			stored := *training
			stored.Blocks = nil
			r.store.trainings[i] = stored
			return nil
		}
	}
	return notFound("training", training.ID)
}

func (r *trainingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.trainings {
		if r.store.trainings[i].ID == id {
			r.store.trainings = append(r.store.trainings[:i], r.store.trainings[i+1:]...)
			r.store.dropBlocksOfTraining(id)
			return nil
		}
	}
	return notFound("training", id)
}

// === Blocks ===

func (r *trainingRepository) AddBlock(_ context.Context, block *domain.TrainingBlock) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	now := time.Now().UTC()
	block.CreatedAt = now
	block.UpdatedAt = now

	stored := *block
	stored.Prescriptions = nil
	r.store.blocks = append(r.store.blocks, stored)
	return nil
}

func (r *trainingRepository) UpdateBlock(_ context.Context, block *domain.TrainingBlock) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.blocks {
		if r.store.blocks[i].ID == block.ID {
			block.UpdatedAt = time.Now().UTC()
			block.CreatedAt = r.store.blocks[i].CreatedAt
			stored := *block
			stored.Prescriptions = nil
			r.store.blocks[i] = stored
			return nil
		}
	}
	return notFound("training block", block.ID)
}

func (r *trainingRepository) DeleteBlock(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.blocks {
		if r.store.blocks[i].ID == id {
			r.store.blocks = append(r.store.blocks[:i], r.store.blocks[i+1:]...)
			r.store.dropPrescriptionsOfBlock(id)
			return nil
		}
	}
	return notFound("training block", id)
}

// === Prescriptions ===

func (r *trainingRepository) AddPrescription(_ context.Context, p *domain.ExercisePrescription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.findExercise(p.ExerciseID) == nil {
		return notFound("exercise", p.ExerciseID)
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	stored.Exercise = nil
	r.store.prescriptions = append(r.store.prescriptions, stored)
	return nil
}

func (r *trainingRepository) UpdatePrescription(_ context.Context, p *domain.ExercisePrescription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.prescriptions {
		if r.store.prescriptions[i].ID == p.ID {
			p.UpdatedAt = time.Now().UTC()
			p.CreatedAt = r.store.prescriptions[i].CreatedAt
			stored := *p
			stored.Exercise = nil
			r.store.prescriptions[i] = stored
			return nil
		}
	}
	return notFound("exercise prescription", p.ID)
}

func (r *trainingRepository) DeletePrescription(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.prescriptions {
		if r.store.prescriptions[i].ID == id {
			r.store.prescriptions = append(r.store.prescriptions[:i], r.store.prescriptions[i+1:]...)
			return nil
		}
	}
	return notFound("exercise prescription", id)
}
