package service

import (
	"context"
	"errors"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrEditNotAllowed       = errors.New("only the workspace owner can edit training content")
	ErrWeekNotFound         = errors.New("training week not found")
	ErrTrainingNotFound     = errors.New("training not found")
	ErrBlockNotFound        = errors.New("training block not found")
	ErrPrescriptionNotFound = errors.New("exercise prescription not found")
	ErrInvalidWeekDates     = errors.New("week start date must not be after end date")
	ErrInvalidStatus        = errors.New("invalid week status")
	ErrInvalidBlockType     = errors.New("invalid block type")
	ErrDateOutsideWeek      = errors.New("scheduled date falls outside the training week")
	ErrFocusNotFound        = errors.New("week focus not found")
)

// WeekInput carries the writable fields of a training week.
type WeekInput struct {
	StartDate time.Time
	EndDate   time.Time
	Status    domain.WeekStatus
	FocusID   *uuid.UUID
	Notes     string
}

// TrainingInput carries the writable fields of a training.
type TrainingInput struct {
	ScheduledDate        time.Time
	Title                string
	Description          string
	Intensity            domain.Intensity
	EstimatedDurationMin int
}

// PlannerService owns the training-plan content: weeks, trainings, blocks
// and prescriptions. Reads are workspace-scoped; every mutation requires
// the owner's edit capability.
type PlannerService interface {
	CreateWeek(ctx context.Context, actor *domain.User, input WeekInput) (*domain.TrainingWeek, error)
	UpdateWeek(ctx context.Context, actor *domain.User, id uuid.UUID, input WeekInput) (*domain.TrainingWeek, error)
	DeleteWeek(ctx context.Context, actor *domain.User, id uuid.UUID) error
	ListWeeks(ctx context.Context, actor *domain.User) ([]domain.TrainingWeek, error)
	// WeeksWithTrainings returns the fully nested workspace plan, the
	// input of the calendar adapter, alert analyzer and exporters.
	WeeksWithTrainings(ctx context.Context, actor *domain.User) ([]domain.TrainingWeek, error)

	CreateTraining(ctx context.Context, actor *domain.User, weekID uuid.UUID, input TrainingInput) (*domain.Training, error)
	GetTraining(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Training, error)
	UpdateTraining(ctx context.Context, actor *domain.User, id uuid.UUID, input TrainingInput) (*domain.Training, error)
	DeleteTraining(ctx context.Context, actor *domain.User, id uuid.UUID) error

	AddBlock(ctx context.Context, actor *domain.User, trainingID uuid.UUID, block domain.TrainingBlock) (*domain.TrainingBlock, error)
	UpdateBlock(ctx context.Context, actor *domain.User, block domain.TrainingBlock) (*domain.TrainingBlock, error)
	DeleteBlock(ctx context.Context, actor *domain.User, trainingID, blockID uuid.UUID) error

	AddPrescription(ctx context.Context, actor *domain.User, trainingID uuid.UUID, p domain.ExercisePrescription) (*domain.ExercisePrescription, error)
	UpdatePrescription(ctx context.Context, actor *domain.User, trainingID uuid.UUID, p domain.ExercisePrescription) (*domain.ExercisePrescription, error)
	DeletePrescription(ctx context.Context, actor *domain.User, trainingID, prescriptionID uuid.UUID) error

	CreateFocus(ctx context.Context, actor *domain.User, name, description, color string) (*domain.WeekFocus, error)
	ListFocuses(ctx context.Context, actor *domain.User) ([]domain.WeekFocus, error)
	UpdateFocus(ctx context.Context, actor *domain.User, id uuid.UUID, name, description, color string) (*domain.WeekFocus, error)
	DeleteFocus(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

// plannerService implements the PlannerService interface.
type plannerService struct {
	weekRepo     repository.WeekRepository
	trainingRepo repository.TrainingRepository
	focusRepo    repository.WeekFocusRepository
	exerciseRepo repository.ExerciseRepository
}

// NewPlannerService creates a new instance of plannerService.
func NewPlannerService(weekRepo repository.WeekRepository, trainingRepo repository.TrainingRepository, focusRepo repository.WeekFocusRepository, exerciseRepo repository.ExerciseRepository) PlannerService {
	return &plannerService{
		weekRepo:     weekRepo,
		trainingRepo: trainingRepo,
		focusRepo:    focusRepo,
		exerciseRepo: exerciseRepo,
	}
}

// === Weeks ===

func (s *plannerService) CreateWeek(ctx context.Context, actor *domain.User, input WeekInput) (*domain.TrainingWeek, error) {
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if err := validateWeekInput(input); err != nil {
		return nil, err
	}

	week := &domain.TrainingWeek{
		OwnerID:   actor.WorkspaceID(),
		CreatedBy: actor.ID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    input.Status,
		FocusID:   input.FocusID,
		Notes:     input.Notes,
	}
	if week.Status == "" {
		week.Status = domain.WeekStatusDraft
	}
	if err := s.weekRepo.Create(ctx, week); err != nil {
		return nil, err
	}
	return week, nil
}

func (s *plannerService) UpdateWeek(ctx context.Context, actor *domain.User, id uuid.UUID, input WeekInput) (*domain.TrainingWeek, error) {
	week, err := s.ownedWeek(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if err := validateWeekInput(input); err != nil {
		return nil, err
	}

	week.StartDate = input.StartDate
	week.EndDate = input.EndDate
	week.Status = input.Status
	week.FocusID = input.FocusID
	week.Notes = input.Notes
	if err := s.weekRepo.Update(ctx, week); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	return week, nil
}

func (s *plannerService) DeleteWeek(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.ownedWeek(ctx, actor, id); err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if err := s.weekRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWeekNotFound
		}
		return err
	}
	return nil
}

func (s *plannerService) ListWeeks(ctx context.Context, actor *domain.User) ([]domain.TrainingWeek, error) {
	return s.weekRepo.GetByWorkspace(ctx, actor.WorkspaceID())
}

func (s *plannerService) WeeksWithTrainings(ctx context.Context, actor *domain.User) ([]domain.TrainingWeek, error) {
	return s.weekRepo.GetWeeksWithTrainings(ctx, actor.WorkspaceID())
}

// === Trainings ===

func (s *plannerService) CreateTraining(ctx context.Context, actor *domain.User, weekID uuid.UUID, input TrainingInput) (*domain.Training, error) {
	week, err := s.ownedWeek(ctx, actor, weekID)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if !week.Contains(input.ScheduledDate) {
		return nil, ErrDateOutsideWeek
	}

	training := &domain.Training{
		WeekID:               weekID,
		ScheduledDate:        input.ScheduledDate,
		Title:                input.Title,
		Description:          input.Description,
		Intensity:            input.Intensity,
		EstimatedDurationMin: input.EstimatedDurationMin,
		ShareStatus:          domain.SharePrivate,
	}
	if err := s.trainingRepo.Create(ctx, training); err != nil {
		return nil, err
	}
	return training, nil
}

func (s *plannerService) GetTraining(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Training, error) {
	return s.ownedTraining(ctx, actor, id)
}

func (s *plannerService) UpdateTraining(ctx context.Context, actor *domain.User, id uuid.UUID, input TrainingInput) (*domain.Training, error) {
	training, err := s.ownedTraining(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}

	week, err := s.weekRepo.GetByID(ctx, training.WeekID)
	if err != nil {
		return nil, err
	}
	if !week.Contains(input.ScheduledDate) {
		return nil, ErrDateOutsideWeek
	}

	training.ScheduledDate = input.ScheduledDate
	training.Title = input.Title
	training.Description = input.Description
	training.Intensity = input.Intensity
	training.EstimatedDurationMin = input.EstimatedDurationMin
	if err := s.trainingRepo.Update(ctx, training); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return training, nil
}

func (s *plannerService) DeleteTraining(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.ownedTraining(ctx, actor, id); err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if err := s.trainingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}
	return nil
}

// === Blocks ===

func (s *plannerService) AddBlock(ctx context.Context, actor *domain.User, trainingID uuid.UUID, block domain.TrainingBlock) (*domain.TrainingBlock, error) {
	if _, err := s.ownedTraining(ctx, actor, trainingID); err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if !block.Type.Valid() {
		return nil, ErrInvalidBlockType
	}

	block.TrainingID = trainingID
	if err := s.trainingRepo.AddBlock(ctx, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (s *plannerService) UpdateBlock(ctx context.Context, actor *domain.User, block domain.TrainingBlock) (*domain.TrainingBlock, error) {
	training, err := s.ownedTraining(ctx, actor, block.TrainingID)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if !block.Type.Valid() {
		return nil, ErrInvalidBlockType
	}
	// the block id comes from the request; it must name a block of the
	// authorized training, not just any block in the store
	if !training.HasBlock(block.ID) {
		return nil, ErrBlockNotFound
	}

	if err := s.trainingRepo.UpdateBlock(ctx, &block); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return &block, nil
}

func (s *plannerService) DeleteBlock(ctx context.Context, actor *domain.User, trainingID, blockID uuid.UUID) error {
	training, err := s.ownedTraining(ctx, actor, trainingID)
	if err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if !training.HasBlock(blockID) {
		return ErrBlockNotFound
	}
	if err := s.trainingRepo.DeleteBlock(ctx, blockID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlockNotFound
		}
		return err
	}
	return nil
}

// === Prescriptions ===

func (s *plannerService) AddPrescription(ctx context.Context, actor *domain.User, trainingID uuid.UUID, p domain.ExercisePrescription) (*domain.ExercisePrescription, error) {
	training, err := s.ownedTraining(ctx, actor, trainingID)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if !training.HasBlock(p.BlockID) {
		return nil, ErrBlockNotFound
	}
	if err := s.ownedExercise(ctx, actor, p.ExerciseID); err != nil {
		return nil, err
	}

	if err := s.trainingRepo.AddPrescription(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *plannerService) UpdatePrescription(ctx context.Context, actor *domain.User, trainingID uuid.UUID, p domain.ExercisePrescription) (*domain.ExercisePrescription, error) {
	training, err := s.ownedTraining(ctx, actor, trainingID)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if !training.HasPrescription(p.ID) {
		return nil, ErrPrescriptionNotFound
	}
	if !training.HasBlock(p.BlockID) {
		return nil, ErrBlockNotFound
	}
	if err := s.ownedExercise(ctx, actor, p.ExerciseID); err != nil {
		return nil, err
	}

	if err := s.trainingRepo.UpdatePrescription(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *plannerService) DeletePrescription(ctx context.Context, actor *domain.User, trainingID, prescriptionID uuid.UUID) error {
	training, err := s.ownedTraining(ctx, actor, trainingID)
	if err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if !training.HasPrescription(prescriptionID) {
		return ErrPrescriptionNotFound
	}
	if err := s.trainingRepo.DeletePrescription(ctx, prescriptionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPrescriptionNotFound
		}
		return err
	}
	return nil
}

// === Week Focuses ===

func (s *plannerService) CreateFocus(ctx context.Context, actor *domain.User, name, description, color string) (*domain.WeekFocus, error) {
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	focus := &domain.WeekFocus{
		OwnerID:     actor.WorkspaceID(),
		Name:        name,
		Description: description,
		Color:       color,
	}
	if err := s.focusRepo.Create(ctx, focus); err != nil {
		return nil, err
	}
	return focus, nil
}

func (s *plannerService) ListFocuses(ctx context.Context, actor *domain.User) ([]domain.WeekFocus, error) {
	return s.focusRepo.GetByWorkspace(ctx, actor.WorkspaceID())
}

func (s *plannerService) UpdateFocus(ctx context.Context, actor *domain.User, id uuid.UUID, name, description, color string) (*domain.WeekFocus, error) {
	focus, err := s.ownedFocus(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	focus.Name = name
	focus.Description = description
	focus.Color = color
	if err := s.focusRepo.Update(ctx, focus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFocusNotFound
		}
		return nil, err
	}
	return focus, nil
}

func (s *plannerService) DeleteFocus(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.ownedFocus(ctx, actor, id); err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}
	if err := s.focusRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFocusNotFound
		}
		return err
	}
	return nil
}

// === Helpers ===

func validateWeekInput(input WeekInput) error {
	if input.StartDate.After(input.EndDate) {
		return ErrInvalidWeekDates
	}
	if input.Status != "" && !input.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// ownedFocus loads a focus and hides it from callers outside its workspace.
func (s *plannerService) ownedFocus(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.WeekFocus, error) {
	focus, err := s.focusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFocusNotFound
		}
		return nil, err
	}
	if focus.OwnerID != actor.WorkspaceID() {
		return nil, ErrFocusNotFound
	}
	return focus, nil
}

// ownedWeek loads a week and hides it from callers outside its workspace.
func (s *plannerService) ownedWeek(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.TrainingWeek, error) {
	week, err := s.weekRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.OwnerID != actor.WorkspaceID() {
		return nil, ErrWeekNotFound
	}
	return week, nil
}

// ownedExercise hides exercises outside the actor's workspace, so a
// prescription can never point into another owner's library.
func (s *plannerService) ownedExercise(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.OwnerID != actor.WorkspaceID() {
		return ErrExerciseNotFound
	}
	return nil
}

// ownedTraining loads a training and verifies, via its week, that it
// belongs to the actor's workspace.
func (s *plannerService) ownedTraining(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if _, err := s.ownedWeek(ctx, actor, training.WeekID); err != nil {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}
