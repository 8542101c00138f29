package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareStatus controls public visibility of a single training.
type ShareStatus string

const (
	SharePrivate ShareStatus = "private"
	ShareShared  ShareStatus = "shared"
)

// Intensity level of a training session.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// Training is a single scheduled workout within a week.
type Training struct {
	ID                   uuid.UUID   `json:"id"`
	WeekID               uuid.UUID   `json:"weekId"`
	ScheduledDate        time.Time   `json:"scheduledDate"`
	Title                string      `json:"title"`
	Description          string      `json:"description,omitempty"`
	Intensity            Intensity   `json:"intensity,omitempty"`
	EstimatedDurationMin int         `json:"estimatedDurationMin,omitempty"`
	ShareStatus          ShareStatus `json:"shareStatus"`
	ShareToken           *string     `json:"shareToken,omitempty"`
	ShareExpiresAt       *time.Time  `json:"shareExpiresAt,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`

	// Blocks are populated by the joined queries, ordered by OrderIndex.
	Blocks []TrainingBlock `json:"blocks,omitempty"`
}

// SharedNow reports whether the training is publicly visible at time now:
// share status enabled, token present and not past expiry (a nil expiry
// means the link does not expire).
func (t *Training) SharedNow(now time.Time) bool {
	if t.ShareStatus != ShareShared || t.ShareToken == nil {
		return false
	}
	if t.ShareExpiresAt != nil && now.After(*t.ShareExpiresAt) {
		return false
	}
	return true
}

// HasBlock reports whether the training carries a block with the given id.
// Only meaningful on a fully loaded training.
func (t *Training) HasBlock(id uuid.UUID) bool {
	for i := range t.Blocks {
		if t.Blocks[i].ID == id {
			return true
		}
	}
	return false
}

// HasPrescription reports whether any block of the training carries a
// prescription with the given id.
func (t *Training) HasPrescription(id uuid.UUID) bool {
	for i := range t.Blocks {
		for j := range t.Blocks[i].Prescriptions {
			if t.Blocks[i].Prescriptions[j].ID == id {
				return true
			}
		}
	}
	return false
}

// BlockType is the kind of segment a block represents within a training.
type BlockType string

const (
	BlockWarmup       BlockType = "warmup"
	BlockMain         BlockType = "main"
	BlockConditioning BlockType = "conditioning"
	BlockAccessory    BlockType = "accessory"
	BlockCooldown     BlockType = "cooldown"
)

func (b BlockType) Valid() bool {
	switch b {
	case BlockWarmup, BlockMain, BlockConditioning, BlockAccessory, BlockCooldown:
		return true
	}
	return false
}

// TrainingBlock is an ordered segment of a training (warm-up, main block,
// conditioning, ...).
type TrainingBlock struct {
	ID             uuid.UUID `json:"id"`
	TrainingID     uuid.UUID `json:"trainingId"`
	Type           BlockType `json:"type"`
	Label          string    `json:"label,omitempty"`
	OrderIndex     int       `json:"orderIndex"`
	DefaultRestSec int       `json:"defaultRestSec,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Prescriptions []ExercisePrescription `json:"prescriptions,omitempty"`
}

// ExercisePrescription is an ordered exercise instance within a block:
// the sets/reps/load/rest protocol for one movement.
type ExercisePrescription struct {
	ID         uuid.UUID `json:"id"`
	BlockID    uuid.UUID `json:"blockId"`
	ExerciseID uuid.UUID `json:"exerciseId"`
	OrderIndex int       `json:"orderIndex"`
	Sets       int       `json:"sets"`
	Reps       string    `json:"reps"`           // e.g. "5", "8-10", "AMRAP"
	Load       string    `json:"load,omitempty"` // e.g. "60kg", "75%"
	RestSec    int       `json:"restSec,omitempty"`
	RPE        *float64  `json:"rpe,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Exercise *Exercise `json:"exercise,omitempty"`
}
