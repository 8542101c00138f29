package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
)

// movementPatternRepository implements repository.MovementPatternRepository
// in memory.
type movementPatternRepository struct {
	store *Store
}

func (r *movementPatternRepository) Create(_ context.Context, pattern *domain.MovementPattern) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if pattern.ID == uuid.Nil {
		pattern.ID = uuid.New()
	}
	now := time.Now().UTC()
	pattern.CreatedAt = now
	pattern.UpdatedAt = now
	r.store.patterns = append(r.store.patterns, *pattern)
	return nil
}

func (r *movementPatternRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.MovementPattern, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if pattern := r.store.findPattern(id); pattern != nil {
		found := *pattern
		return &found, nil
	}
	return nil, notFound("movement pattern", id)
}

func (r *movementPatternRepository) GetByWorkspace(_ context.Context, ownerID uuid.UUID) ([]domain.MovementPattern, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var patterns []domain.MovementPattern
	for _, pattern := range r.store.patterns {
		if pattern.OwnerID == ownerID {
			patterns = append(patterns, pattern)
		}
	}
	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].Name < patterns[j].Name })
	return patterns, nil
}

func (r *movementPatternRepository) Update(_ context.Context, pattern *domain.MovementPattern) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.patterns {
		if r.store.patterns[i].ID == pattern.ID {
			pattern.UpdatedAt = time.Now().UTC()
			pattern.CreatedAt = r.store.patterns[i].CreatedAt
			r.store.patterns[i] = *pattern
			return nil
		}
	}
	return notFound("movement pattern", pattern.ID)
}

func (r *movementPatternRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.patterns {
		if r.store.patterns[i].ID == id {
			r.store.patterns = append(r.store.patterns[:i], r.store.patterns[i+1:]...)
			// exercises pointing at the pattern lose the reference
			for ei := range r.store.exercises {
				if r.store.exercises[ei].MovementPatternID != nil && *r.store.exercises[ei].MovementPatternID == id {
					r.store.exercises[ei].MovementPatternID = nil
				}
			}
			return nil
		}
	}
	return notFound("movement pattern", id)
}
