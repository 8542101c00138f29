package domain

import (
	"time"

	"github.com/google/uuid"
)

// MovementPattern is a taxonomy entry for an exercise's dominant movement
// (e.g. "push horizontal", "hip hinge").
type MovementPattern struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Exercise represents a named movement, optionally linked to a
// MovementPattern.
type Exercise struct {
	ID                uuid.UUID  `json:"id"`
	OwnerID           uuid.UUID  `json:"ownerId"`
	Name              string     `json:"name"`
	Instructions      string     `json:"instructions,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	MovementPatternID *uuid.UUID `json:"movementPatternId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	MovementPattern *MovementPattern `json:"movementPattern,omitempty"`
}
