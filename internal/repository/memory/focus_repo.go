package memory

import (
	"context"
	"sort"
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/google/uuid"
)

// weekFocusRepository implements repository.WeekFocusRepository in memory.
type weekFocusRepository struct {
	store *Store
}

func (r *weekFocusRepository) Create(_ context.Context, focus *domain.WeekFocus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if focus.ID == uuid.Nil {
		focus.ID = uuid.New()
	}
	now := time.Now().UTC()
	focus.CreatedAt = now
	focus.UpdatedAt = now
	r.store.focuses = append(r.store.focuses, *focus)
	return nil
}

func (r *weekFocusRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.WeekFocus, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if focus := r.store.findFocus(id); focus != nil {
		found := *focus
		return &found, nil
	}
	return nil, notFound("week focus", id)
}

func (r *weekFocusRepository) GetByWorkspace(_ context.Context, ownerID uuid.UUID) ([]domain.WeekFocus, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var focuses []domain.WeekFocus
	for _, focus := range r.store.focuses {
		if focus.OwnerID == ownerID {
			focuses = append(focuses, focus)
		}
	}
	sort.SliceStable(focuses, func(i, j int) bool { return focuses[i].Name < focuses[j].Name })
	return focuses, nil
}

func (r *weekFocusRepository) Update(_ context.Context, focus *domain.WeekFocus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.focuses {
		if r.store.focuses[i].ID == focus.ID {
			focus.UpdatedAt = time.Now().UTC()
			focus.CreatedAt = r.store.focuses[i].CreatedAt
			r.store.focuses[i] = *focus
			return nil
		}
	}
	return notFound("week focus", focus.ID)
}

func (r *weekFocusRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.focuses {
		if r.store.focuses[i].ID == id {
			r.store.focuses = append(r.store.focuses[:i], r.store.focuses[i+1:]...)
			// weeks pointing at the focus lose the reference, like ON DELETE SET NULL
			for wi := range r.store.weeks {
				if r.store.weeks[wi].FocusID != nil && *r.store.weeks[wi].FocusID == id {
					r.store.weeks[wi].FocusID = nil
				}
			}
			return nil
		}
	}
	return notFound("week focus", id)
}
