package memory

import (
	"time"

	"fitplan/training-planner/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Demo credentials for the seeded workspace. Documented in the README;
// only ever live in the in-memory mock provider.
const (
	SeedOwnerEmail  = "owner@fitplan.local"
	SeedAdminEmail  = "admin@fitplan.local"
	SeedViewerEmail = "viewer@fitplan.local"
	SeedPassword    = "fitplan-demo"
)

// Seed fills the store with a deterministic demo workspace: one owner with
// an admin and a viewer, a movement-pattern taxonomy, a small exercise
// library, and three training weeks around the current date (one past, the
// current one, one upcoming draft left intentionally empty so the pendency
// alerts have something to say).
func Seed(store *Store) error {
	faker := gofakeit.New(1042)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	ownerID := uuid.New()

	store.mu.Lock()
	defer store.mu.Unlock()

	addUser := func(id uuid.UUID, email, name string, role domain.Role, ownerRef *uuid.UUID) {
		store.accounts = append(store.accounts, domain.Account{
			ID:           id,
			Email:        email,
			PasswordHash: string(passwordHash),
			CreatedAt:    now,
		})
		store.users = append(store.users, domain.User{
			ID:        id,
			Email:     email,
			Name:      name,
			Role:      role,
			OwnerID:   ownerRef,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	addUser(ownerID, SeedOwnerEmail, faker.Name(), domain.RoleOwner, nil)
	addUser(uuid.New(), SeedAdminEmail, faker.Name(), domain.RoleAdmin, &ownerID)
	addUser(uuid.New(), SeedViewerEmail, faker.Name(), domain.RoleViewer, &ownerID)

	// movement taxonomy and a small library built on it
	patternNames := []string{"push horizontal", "pull vertical", "squat", "hip hinge", "carry"}
	patternIDs := make([]uuid.UUID, len(patternNames))
	for i, name := range patternNames {
		patternIDs[i] = uuid.New()
		store.patterns = append(store.patterns, domain.MovementPattern{
			ID:          patternIDs[i],
			OwnerID:     ownerID,
			Name:        name,
			Description: faker.Sentence(6),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	exerciseNames := []string{
		"Bench Press", "Weighted Pull-up", "Back Squat", "Romanian Deadlift",
		"Farmer Carry", "Overhead Press", "Barbell Row", "Front Squat",
	}
	exerciseIDs := make([]uuid.UUID, len(exerciseNames))
	for i, name := range exerciseNames {
		exerciseIDs[i] = uuid.New()
		patternID := patternIDs[i%len(patternIDs)]
		store.exercises = append(store.exercises, domain.Exercise{
			ID:                exerciseIDs[i],
			OwnerID:           ownerID,
			Name:              name,
			Instructions:      faker.Sentence(10),
			MovementPatternID: &patternID,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	focusID := uuid.New()
	store.focuses = append(store.focuses, domain.WeekFocus{
		ID:          focusID,
		OwnerID:     ownerID,
		Name:        "Hypertrophy",
		Description: "Volume accumulation at moderate intensity",
		Color:       "#2563eb",
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	// three weeks anchored on the Monday of the current week
	monday := mondayOf(now)
	weeks := []struct {
		start  time.Time
		status domain.WeekStatus
		focus  *uuid.UUID
		days   []int // weekday offsets from Monday that get a training
	}{
		{monday.AddDate(0, 0, -7), domain.WeekStatusCompleted, &focusID, []int{0, 2, 4}},
		{monday, domain.WeekStatusActive, &focusID, []int{0, 2, 4}},
		{monday.AddDate(0, 0, 7), domain.WeekStatusDraft, nil, nil},
	}

	for _, spec := range weeks {
		weekID := uuid.New()
		store.weeks = append(store.weeks, domain.TrainingWeek{
			ID:        weekID,
			OwnerID:   ownerID,
			CreatedBy: ownerID,
			StartDate: spec.start,
			EndDate:   spec.start.AddDate(0, 0, 4),
			Status:    spec.status,
			FocusID:   spec.focus,
			CreatedAt: now,
			UpdatedAt: now,
		})

		for _, offset := range spec.days {
			trainingID := uuid.New()
			store.trainings = append(store.trainings, domain.Training{
				ID:                   trainingID,
				WeekID:               weekID,
				ScheduledDate:        spec.start.AddDate(0, 0, offset),
				Title:                faker.RandomString([]string{"Upper Body", "Lower Body", "Full Body"}),
				Description:          faker.Sentence(8),
				Intensity:            domain.Intensity(faker.RandomString([]string{string(domain.IntensityLow), string(domain.IntensityModerate), string(domain.IntensityHigh)})),
				EstimatedDurationMin: 45 + faker.Number(0, 4)*15,
				ShareStatus:          domain.SharePrivate,
				CreatedAt:            now,
				UpdatedAt:            now,
			})

			blockTypes := []domain.BlockType{domain.BlockWarmup, domain.BlockMain, domain.BlockConditioning}
			for order, blockType := range blockTypes {
				blockID := uuid.New()
				store.blocks = append(store.blocks, domain.TrainingBlock{
					ID:             blockID,
					TrainingID:     trainingID,
					Type:           blockType,
					Label:          string(blockType),
					OrderIndex:     order,
					DefaultRestSec: 90,
					CreatedAt:      now,
					UpdatedAt:      now,
				})

				// conditioning blocks are allowed to stay empty
				if blockType == domain.BlockConditioning {
					continue
				}
				for p := 0; p < 2; p++ {
					rpe := float64(faker.Number(6, 9))
					store.prescriptions = append(store.prescriptions, domain.ExercisePrescription{
						ID:         uuid.New(),
						BlockID:    blockID,
						ExerciseID: exerciseIDs[faker.Number(0, len(exerciseIDs)-1)],
						OrderIndex: p,
						Sets:       faker.Number(3, 5),
						Reps:       faker.RandomString([]string{"5", "8", "8-10", "12"}),
						Load:       faker.RandomString([]string{"60kg", "70%", "RPE call"}),
						RestSec:    90,
						RPE:        &rpe,
						CreatedAt:  now,
						UpdatedAt:  now,
					})
				}
			}
		}
	}

	return nil
}

// mondayOf returns the Monday of the week containing t, at midnight UTC.
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
