package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
)

// exerciseRepository implements repository.ExerciseRepository in memory.
type exerciseRepository struct {
	store *Store
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	stored := *exercise
	stored.MovementPattern = nil
	r.store.exercises = append(r.store.exercises, stored)
	return nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Exercise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if exercise := r.store.findExercise(id); exercise != nil {
		found := *exercise
		if found.MovementPatternID != nil {
			if pattern := r.store.findPattern(*found.MovementPatternID); pattern != nil {
				p := *pattern
				found.MovementPattern = &p
			}
		}
		return &found, nil
	}
	return nil, notFound("exercise", id)
}

func (r *exerciseRepository) GetByWorkspace(_ context.Context, ownerID uuid.UUID) ([]domain.Exercise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var exercises []domain.Exercise
	for _, exercise := range r.store.exercises {
		if exercise.OwnerID != ownerID {
			continue
		}
		found := exercise
		if found.MovementPatternID != nil {
			if pattern := r.store.findPattern(*found.MovementPatternID); pattern != nil {
				p := *pattern
				found.MovementPattern = &p
			}
		}
		exercises = append(exercises, found)
	}
	sort.SliceStable(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

func (r *exerciseRepository) Update(_ context.Context, exercise *domain.Exercise) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.exercises {
		if r.store.exercises[i].ID == exercise.ID {
			exercise.UpdatedAt = time.Now().UTC()
			exercise.CreatedAt = r.store.exercises[i].CreatedAt
			stored := *exercise
			stored.MovementPattern = nil
			r.store.exercises[i] = stored
			return nil
		}
	}
	return notFound("exercise", exercise.ID)
}

func (r *exerciseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.exercises {
		if r.store.exercises[i].ID == id {
			r.store.exercises = append(r.store.exercises[:i], r.store.exercises[i+1:]...)
			return nil
		}
	}
	return notFound("exercise", id)
}
