package memory

import (
	"sort"
	"sync"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// Store holds every entity of the mock provider in plain in-memory slices,
// mutated in place to simulate persistence across calls within a session.
// Nothing is written to disk; a restart resets the data. A single mutex
// serializes access so the mock stays safe under concurrent handlers.
type Store struct {
	mu sync.Mutex

	accounts      []domain.Account
	users         []domain.User
	focuses       []domain.WeekFocus
	weeks         []domain.TrainingWeek
	trainings     []domain.Training
	blocks        []domain.TrainingBlock
	prescriptions []domain.ExercisePrescription
	exercises     []domain.Exercise
	patterns      []domain.MovementPattern
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewRepositories wires every mock repository over one shared store. The
// shapes returned are identical to the live gateway's; callers cannot tell
// which path executed.
func NewRepositories(store *Store) *repository.Repositories {
	return &repository.Repositories{
		Accounts:  &accountRepository{store: store},
		Users:     &userRepository{store: store},
		Focuses:   &weekFocusRepository{store: store},
		Weeks:     &weekRepository{store: store},
		Trainings: &trainingRepository{store: store},
		Exercises: &exerciseRepository{store: store},
		Patterns:  &movementPatternRepository{store: store},
	}
}

// notFound builds the explanatory not-found error the mock provider throws
// for unknown ids, a programmer mistake rather than a simulated backend
// failure.
func notFound(entity string, id uuid.UUID) error {
	return &repository.Error{
		Code:    repository.CodeNotFound,
		Message: "no " + entity + " with id " + id.String(),
	}
}

// assembleTraining builds a fully nested copy of the training: blocks in
// order-index order, prescriptions in order-index order, exercises and
// movement patterns attached.
func (s *Store) assembleTraining(t domain.Training) domain.Training {
	var blocks []domain.TrainingBlock
	for _, b := range s.blocks {
		if b.TrainingID != t.ID {
			continue
		}
		block := b
		var prescriptions []domain.ExercisePrescription
		for _, p := range s.prescriptions {
			if p.BlockID != block.ID {
				continue
			}
			prescription := p
			if ex := s.findExercise(p.ExerciseID); ex != nil {
				exercise := *ex
				if exercise.MovementPatternID != nil {
					if mp := s.findPattern(*exercise.MovementPatternID); mp != nil {
						pattern := *mp
						exercise.MovementPattern = &pattern
					}
				}
				prescription.Exercise = &exercise
			}
			prescriptions = append(prescriptions, prescription)
		}
		sort.SliceStable(prescriptions, func(i, j int) bool {
			return prescriptions[i].OrderIndex < prescriptions[j].OrderIndex
		})
		block.Prescriptions = prescriptions
		blocks = append(blocks, block)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].OrderIndex < blocks[j].OrderIndex
	})
	t.Blocks = blocks
	return t
}

func (s *Store) findExercise(id uuid.UUID) *domain.Exercise {
	for i := range s.exercises {
		if s.exercises[i].ID == id {
			return &s.exercises[i]
		}
	}
	return nil
}

func (s *Store) findPattern(id uuid.UUID) *domain.MovementPattern {
	for i := range s.patterns {
		if s.patterns[i].ID == id {
			return &s.patterns[i]
		}
	}
	return nil
}

func (s *Store) findFocus(id uuid.UUID) *domain.WeekFocus {
	for i := range s.focuses {
		if s.focuses[i].ID == id {
			return &s.focuses[i]
		}
	}
	return nil
}
