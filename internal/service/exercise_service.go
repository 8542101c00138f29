package service

import (
	"context"
	"errors"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrPatternNotFound  = errors.New("movement pattern not found")
	ErrNameRequired     = errors.New("name is required")
)

// ExerciseService manages the exercise library and the movement-pattern
// taxonomy of a workspace.
type ExerciseService interface {
	CreateExercise(ctx context.Context, actor *domain.User, name, instructions, notes string, patternID *uuid.UUID) (*domain.Exercise, error)
	GetExercise(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, actor *domain.User) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, actor *domain.User, id uuid.UUID, name, instructions, notes string, patternID *uuid.UUID) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, actor *domain.User, id uuid.UUID) error

	CreatePattern(ctx context.Context, actor *domain.User, name, description string) (*domain.MovementPattern, error)
	ListPatterns(ctx context.Context, actor *domain.User) ([]domain.MovementPattern, error)
	UpdatePattern(ctx context.Context, actor *domain.User, id uuid.UUID, name, description string) (*domain.MovementPattern, error)
	DeletePattern(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	patternRepo  repository.MovementPatternRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, patternRepo repository.MovementPatternRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		patternRepo:  patternRepo,
	}
}

// === Exercises ===

func (s *exerciseService) CreateExercise(ctx context.Context, actor *domain.User, name, instructions, notes string, patternID *uuid.UUID) (*domain.Exercise, error) {
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	exercise := &domain.Exercise{
		OwnerID:           actor.WorkspaceID(),
		Name:              name,
		Instructions:      instructions,
		Notes:             notes,
		MovementPatternID: patternID,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != actor.WorkspaceID() {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, actor *domain.User) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByWorkspace(ctx, actor.WorkspaceID())
}

func (s *exerciseService) UpdateExercise(ctx context.Context, actor *domain.User, id uuid.UUID, name, instructions, notes string, patternID *uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.GetExercise(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	exercise.Name = name
	exercise.Instructions = instructions
	exercise.Notes = notes
	exercise.MovementPatternID = patternID
	exercise.MovementPattern = nil
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.GetExercise(ctx, actor, id); err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// === Movement Patterns ===

func (s *exerciseService) CreatePattern(ctx context.Context, actor *domain.User, name, description string) (*domain.MovementPattern, error) {
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	pattern := &domain.MovementPattern{
		OwnerID:     actor.WorkspaceID(),
		Name:        name,
		Description: description,
	}
	if err := s.patternRepo.Create(ctx, pattern); err != nil {
		return nil, err
	}
	return pattern, nil
}

func (s *exerciseService) ListPatterns(ctx context.Context, actor *domain.User) ([]domain.MovementPattern, error) {
	return s.patternRepo.GetByWorkspace(ctx, actor.WorkspaceID())
}

func (s *exerciseService) UpdatePattern(ctx context.Context, actor *domain.User, id uuid.UUID, name, description string) (*domain.MovementPattern, error) {
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, err
	}
	if pattern.OwnerID != actor.WorkspaceID() {
		return nil, ErrPatternNotFound
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	pattern.Name = name
	pattern.Description = description
	if err := s.patternRepo.Update(ctx, pattern); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, err
	}
	return pattern, nil
}

func (s *exerciseService) DeletePattern(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPatternNotFound
		}
		return err
	}
	if pattern.OwnerID != actor.WorkspaceID() {
		return ErrPatternNotFound
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	return s.patternRepo.Delete(ctx, id)
}
