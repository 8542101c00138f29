package repository

import (
	"context"
	"errors"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
)

// Error codes carried by repository errors. The live gateway maps backend
// error codes onto these; the mock provider produces them directly. Callers
// pattern-match the three specific codes and treat everything else as a
// generic failure.
const (
	CodeNotFound         = "not_found"
	CodeDuplicate        = "duplicate"
	CodePermissionDenied = "permission_denied"
	CodeInternal         = "internal"
)

// Error is a gateway error carrying a provider-style code and message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is match any two repository errors with the same code,
// so sentinel comparisons work across wrapped errors.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Sentinel errors for the common cases.
var (
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrDuplicate        = &Error{Code: CodeDuplicate, Message: "already exists"}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied, Message: "permission denied"}
)

// AccountRepository manages authentication identities. Delete exists so the
// provisioning flow can roll back an account when the profile insert fails.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository manages profile rows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// WeekFocusRepository manages the named training emphases.
type WeekFocusRepository interface {
	Create(ctx context.Context, focus *domain.WeekFocus) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WeekFocus, error)
	GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.WeekFocus, error)
	Update(ctx context.Context, focus *domain.WeekFocus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WeekRepository manages training weeks. GetWeeksWithTrainings is the
// deep read the calendar view is built from: weeks with focus, trainings,
// blocks, prescriptions, exercises and movement patterns all nested,
// ordered by start date / scheduled date / order index.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.TrainingWeek) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingWeek, error)
	GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error)
	GetWeeksWithTrainings(ctx context.Context, ownerID uuid.UUID) ([]domain.TrainingWeek, error)
	Update(ctx context.Context, week *domain.TrainingWeek) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrainingRepository manages trainings and their nested blocks and
// prescriptions.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) error
	// GetByID returns the training with blocks and prescriptions nested.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Training, error)
	GetByWeek(ctx context.Context, weekID uuid.UUID) ([]domain.Training, error)
	// GetByShareToken resolves a public share token to the full nested
	// training. Expiry/status checks belong to the service layer.
	GetByShareToken(ctx context.Context, token string) (*domain.Training, error)
	Update(ctx context.Context, training *domain.Training) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddBlock(ctx context.Context, block *domain.TrainingBlock) error
	UpdateBlock(ctx context.Context, block *domain.TrainingBlock) error
	DeleteBlock(ctx context.Context, id uuid.UUID) error

	AddPrescription(ctx context.Context, p *domain.ExercisePrescription) error
	UpdatePrescription(ctx context.Context, p *domain.ExercisePrescription) error
	DeletePrescription(ctx context.Context, id uuid.UUID) error
}

// ExerciseRepository manages the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementPatternRepository manages the movement taxonomy.
type MovementPatternRepository interface {
	Create(ctx context.Context, pattern *domain.MovementPattern) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MovementPattern, error)
	GetByWorkspace(ctx context.Context, ownerID uuid.UUID) ([]domain.MovementPattern, error)
	Update(ctx context.Context, pattern *domain.MovementPattern) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles every data-access interface. The composition root
// builds exactly one of these (live or mock) and injects it everywhere, so
// no call site ever branches on the backing implementation.
type Repositories struct {
	Accounts  AccountRepository
	Users     UserRepository
	Focuses   WeekFocusRepository
	Weeks     WeekRepository
	Trainings TrainingRepository
	Exercises ExerciseRepository
	Patterns  MovementPatternRepository
}
