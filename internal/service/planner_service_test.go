package service

import (
	"context"
	"testing"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannerService(repos *repository.Repositories) PlannerService {
	return NewPlannerService(repos.Weeks, repos.Trainings, repos.Focuses, repos.Exercises)
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateWeek_OwnerOnly(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	input := WeekInput{StartDate: utcDate(2026, 1, 5), EndDate: utcDate(2026, 1, 9)}

	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	week, err := svc.CreateWeek(context.Background(), owner, input)
	require.NoError(t, err)
	assert.Equal(t, domain.WeekStatusDraft, week.Status, "status defaults to draft")
	assert.Equal(t, owner.ID, week.OwnerID)

	for _, email := range []string{memory.SeedAdminEmail, memory.SeedViewerEmail} {
		actor := seededUser(t, repos, email)
		_, err := svc.CreateWeek(context.Background(), actor, input)
		assert.ErrorIs(t, err, ErrEditNotAllowed, "%s must not edit content", actor.Role)
	}
}

func TestCreateWeek_RejectsInvertedDates(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.CreateWeek(context.Background(), owner, WeekInput{
		StartDate: utcDate(2026, 1, 9),
		EndDate:   utcDate(2026, 1, 5),
	})
	assert.ErrorIs(t, err, ErrInvalidWeekDates)
}

func TestCreateTraining_DateMustFallInsideWeek(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	week, err := svc.CreateWeek(context.Background(), owner, WeekInput{
		StartDate: utcDate(2026, 1, 5), EndDate: utcDate(2026, 1, 9),
	})
	require.NoError(t, err)

	_, err = svc.CreateTraining(context.Background(), owner, week.ID, TrainingInput{
		ScheduledDate: utcDate(2026, 1, 12), Title: "Stray",
	})
	assert.ErrorIs(t, err, ErrDateOutsideWeek)

	training, err := svc.CreateTraining(context.Background(), owner, week.ID, TrainingInput{
		ScheduledDate: utcDate(2026, 1, 7), Title: "Midweek",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SharePrivate, training.ShareStatus, "new trainings start private")
}

func TestWeeksWithTrainings_NestedShape(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	weeks, err := svc.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, weeks, 3, "seed plants three weeks")

	// ordered by start date: completed, active, draft
	assert.Equal(t, domain.WeekStatusCompleted, weeks[0].Status)
	assert.Equal(t, domain.WeekStatusActive, weeks[1].Status)
	assert.Equal(t, domain.WeekStatusDraft, weeks[2].Status)

	require.NotEmpty(t, weeks[1].Trainings, "active week carries trainings")
	assert.Empty(t, weeks[2].Trainings, "draft week is intentionally empty")
	require.NotNil(t, weeks[1].Focus, "focus joined onto the week")
	assert.Equal(t, "Hypertrophy", weeks[1].Focus.Name)

	training := weeks[1].Trainings[0]
	require.NotEmpty(t, training.Blocks)
	for _, block := range training.Blocks {
		if block.Type == domain.BlockConditioning {
			assert.Empty(t, block.Prescriptions)
			continue
		}
		require.NotEmpty(t, block.Prescriptions)
		assert.NotNil(t, block.Prescriptions[0].Exercise, "exercise joined onto the prescription")
	}
}

func TestOwnedWeek_ForeignWorkspaceHidden(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	week, err := svc.CreateWeek(context.Background(), owner, WeekInput{
		StartDate: utcDate(2026, 2, 2), EndDate: utcDate(2026, 2, 6),
	})
	require.NoError(t, err)

	// a second, unrelated owner sees not-found rather than forbidden
	stranger := &domain.User{ID: uuid.New(), Role: domain.RoleOwner, Active: true}
	_, err = svc.UpdateWeek(context.Background(), stranger, week.ID, WeekInput{
		StartDate: utcDate(2026, 2, 2), EndDate: utcDate(2026, 2, 6),
	})
	assert.ErrorIs(t, err, ErrWeekNotFound)
}

func TestBlocks_TypeValidation(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	week, err := svc.CreateWeek(context.Background(), owner, WeekInput{
		StartDate: utcDate(2026, 3, 2), EndDate: utcDate(2026, 3, 6),
	})
	require.NoError(t, err)
	training, err := svc.CreateTraining(context.Background(), owner, week.ID, TrainingInput{
		ScheduledDate: utcDate(2026, 3, 4), Title: "Session",
	})
	require.NoError(t, err)

	_, err = svc.AddBlock(context.Background(), owner, training.ID, domain.TrainingBlock{Type: "stretching"})
	assert.ErrorIs(t, err, ErrInvalidBlockType)

	block, err := svc.AddBlock(context.Background(), owner, training.ID, domain.TrainingBlock{Type: domain.BlockMain})
	require.NoError(t, err)
	assert.Equal(t, training.ID, block.TrainingID)
}

func TestDeleteWeek_CascadesThroughNesting(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	weeks, err := svc.WeeksWithTrainings(context.Background(), owner)
	require.NoError(t, err)
	active := weeks[1]
	require.NotEmpty(t, active.Trainings)
	trainingID := active.Trainings[0].ID

	require.NoError(t, svc.DeleteWeek(context.Background(), owner, active.ID))

	_, err = svc.GetTraining(context.Background(), owner, trainingID)
	assert.ErrorIs(t, err, ErrTrainingNotFound)
}

// foreignWorkspaceFixture plants a second, unrelated workspace with its
// own week, training, block, exercise and prescription.
func foreignWorkspaceFixture(t *testing.T, repos *repository.Repositories, svc PlannerService) (*domain.User, *domain.Training, *domain.Exercise) {
	t.Helper()
	ctx := context.Background()

	owner := &domain.User{
		ID:     uuid.New(),
		Email:  "other-owner@fitplan.local",
		Name:   "Other Owner",
		Role:   domain.RoleOwner,
		Active: true,
	}
	require.NoError(t, repos.Users.Create(ctx, owner))

	exercise := &domain.Exercise{OwnerID: owner.ID, Name: "Barbell Row"}
	require.NoError(t, repos.Exercises.Create(ctx, exercise))

	week, err := svc.CreateWeek(ctx, owner, WeekInput{
		StartDate: utcDate(2026, 4, 6), EndDate: utcDate(2026, 4, 10),
	})
	require.NoError(t, err)
	training, err := svc.CreateTraining(ctx, owner, week.ID, TrainingInput{
		ScheduledDate: utcDate(2026, 4, 8), Title: "Pull Day",
	})
	require.NoError(t, err)
	block, err := svc.AddBlock(ctx, owner, training.ID, domain.TrainingBlock{Type: domain.BlockMain})
	require.NoError(t, err)
	_, err = svc.AddPrescription(ctx, owner, training.ID, domain.ExercisePrescription{
		BlockID: block.ID, ExerciseID: exercise.ID, Sets: 5, Reps: "5",
	})
	require.NoError(t, err)

	loaded, err := svc.GetTraining(ctx, owner, training.ID)
	require.NoError(t, err)
	return owner, loaded, exercise
}

func TestBlockMutations_ForeignBlockHidden(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	ctx := context.Background()
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	other, foreign, _ := foreignWorkspaceFixture(t, repos, svc)

	weeks, err := svc.WeeksWithTrainings(ctx, owner)
	require.NoError(t, err)
	ownTraining := weeks[1].Trainings[0]
	foreignBlock := foreign.Blocks[0]

	// a block id from another workspace, smuggled under an owned training
	_, err = svc.UpdateBlock(ctx, owner, domain.TrainingBlock{
		ID:         foreignBlock.ID,
		TrainingID: ownTraining.ID,
		Type:       domain.BlockCooldown,
	})
	assert.ErrorIs(t, err, ErrBlockNotFound)

	err = svc.DeleteBlock(ctx, owner, ownTraining.ID, foreignBlock.ID)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	// the victim's block is untouched, type and parent included
	reloaded, err := svc.GetTraining(ctx, other, foreign.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Blocks, 1)
	assert.Equal(t, domain.BlockMain, reloaded.Blocks[0].Type)
	assert.Equal(t, foreign.ID, reloaded.Blocks[0].TrainingID)
}

func TestPrescriptionMutations_ForeignIDsHidden(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	ctx := context.Background()
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	other, foreign, foreignExercise := foreignWorkspaceFixture(t, repos, svc)

	weeks, err := svc.WeeksWithTrainings(ctx, owner)
	require.NoError(t, err)
	ownTraining := weeks[1].Trainings[0]
	var ownBlock *domain.TrainingBlock
	for i := range ownTraining.Blocks {
		if len(ownTraining.Blocks[i].Prescriptions) > 0 {
			ownBlock = &ownTraining.Blocks[i]
			break
		}
	}
	require.NotNil(t, ownBlock, "seeded training carries a prescribed block")
	ownExercise := ownBlock.Prescriptions[0].Exercise
	require.NotNil(t, ownExercise)
	foreignPrescription := foreign.Blocks[0].Prescriptions[0]

	// attach to a block in another workspace
	_, err = svc.AddPrescription(ctx, owner, ownTraining.ID, domain.ExercisePrescription{
		BlockID: foreign.Blocks[0].ID, ExerciseID: ownExercise.ID, Sets: 3, Reps: "8",
	})
	assert.ErrorIs(t, err, ErrBlockNotFound)

	// point at an exercise from another owner's library
	_, err = svc.AddPrescription(ctx, owner, ownTraining.ID, domain.ExercisePrescription{
		BlockID: ownBlock.ID, ExerciseID: foreignExercise.ID, Sets: 3, Reps: "8",
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	// rewrite or remove a prescription that lives in another workspace
	_, err = svc.UpdatePrescription(ctx, owner, ownTraining.ID, domain.ExercisePrescription{
		ID: foreignPrescription.ID, BlockID: ownBlock.ID, ExerciseID: ownExercise.ID, Sets: 1, Reps: "1",
	})
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	err = svc.DeletePrescription(ctx, owner, ownTraining.ID, foreignPrescription.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	// the victim's prescription survives as written
	reloaded, err := svc.GetTraining(ctx, other, foreign.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Blocks[0].Prescriptions, 1)
	assert.Equal(t, 5, reloaded.Blocks[0].Prescriptions[0].Sets)
}

func TestFocusCRUD(t *testing.T) {
	repos := seededRepos(t)
	svc := newPlannerService(repos)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)
	viewer := seededUser(t, repos, memory.SeedViewerEmail)

	focus, err := svc.CreateFocus(context.Background(), owner, "Strength", "Heavy triples", "#b91c1c")
	require.NoError(t, err)

	_, err = svc.CreateFocus(context.Background(), viewer, "Nope", "", "")
	assert.ErrorIs(t, err, ErrEditNotAllowed)

	_, err = svc.CreateFocus(context.Background(), owner, "", "", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	updated, err := svc.UpdateFocus(context.Background(), owner, focus.ID, "Max Strength", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Max Strength", updated.Name)

	require.NoError(t, svc.DeleteFocus(context.Background(), owner, focus.ID))
	err = svc.DeleteFocus(context.Background(), owner, focus.ID)
	assert.ErrorIs(t, err, ErrFocusNotFound)
}
