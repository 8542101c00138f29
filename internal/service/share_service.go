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
	// ErrShareNotAvailable covers every public resolution failure: unknown
	// token, disabled sharing and expired links all look the same to an
	// anonymous caller.
	ErrShareNotAvailable = errors.New("shared training not available")
)

// DefaultShareTTL is applied when sharing is enabled without an explicit
// expiry.
const DefaultShareTTL = 30 * 24 * time.Hour

// ShareService manages public share links for single trainings.
type ShareService interface {
	// Enable turns on public sharing and returns the training with its
	// fresh token. A zero ttl applies DefaultShareTTL.
	Enable(ctx context.Context, actor *domain.User, trainingID uuid.UUID, ttl time.Duration) (*domain.Training, error)
	Disable(ctx context.Context, actor *domain.User, trainingID uuid.UUID) error
	// Resolve maps a share token to its read-only training, enforcing
	// share status and expiry. No authentication involved.
	Resolve(ctx context.Context, token string, now time.Time) (*domain.Training, error)
}

// shareService implements the ShareService interface.
type shareService struct {
	planner      PlannerService
	trainingRepo repository.TrainingRepository
}

// NewShareService creates a new instance of shareService.
func NewShareService(planner PlannerService, trainingRepo repository.TrainingRepository) ShareService {
	return &shareService{
		planner:      planner,
		trainingRepo: trainingRepo,
	}
}

func (s *shareService) Enable(ctx context.Context, actor *domain.User, trainingID uuid.UUID, ttl time.Duration) (*domain.Training, error) {
	training, err := s.planner.GetTraining(ctx, actor, trainingID)
	if err != nil {
		return nil, err
	}
	if !actor.Capabilities().CanEdit {
		return nil, ErrEditNotAllowed
	}

	if ttl <= 0 {
		ttl = DefaultShareTTL
	}
	token := uuid.NewString()
	expiry := time.Now().UTC().Add(ttl)

	training.ShareStatus = domain.ShareShared
	training.ShareToken = &token
	training.ShareExpiresAt = &expiry
	if err := s.trainingRepo.Update(ctx, training); err != nil {
		return nil, err
	}
	return training, nil
}

func (s *shareService) Disable(ctx context.Context, actor *domain.User, trainingID uuid.UUID) error {
	training, err := s.planner.GetTraining(ctx, actor, trainingID)
	if err != nil {
		return err
	}
	if !actor.Capabilities().CanEdit {
		return ErrEditNotAllowed
	}

	training.ShareStatus = domain.SharePrivate
	training.ShareToken = nil
	training.ShareExpiresAt = nil
	return s.trainingRepo.Update(ctx, training)
}

func (s *shareService) Resolve(ctx context.Context, token string, now time.Time) (*domain.Training, error) {
	if token == "" {
		return nil, ErrShareNotAvailable
	}

	training, err := s.trainingRepo.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShareNotAvailable
		}
		return nil, err
	}
	if !training.SharedNow(now) {
		return nil, ErrShareNotAvailable
	}
	return training, nil
}
