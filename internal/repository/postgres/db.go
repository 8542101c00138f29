package postgres

import (
	"context"
	"fmt"
	"time"

	"fitplan/training-planner/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool against the configured database URL
// and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewRepositories wires every Postgres-backed repository over one pool.
func NewRepositories(pool *pgxpool.Pool) *repository.Repositories {
	return &repository.Repositories{
		Accounts:  NewAccountRepository(pool),
		Users:     NewUserRepository(pool),
		Focuses:   NewWeekFocusRepository(pool),
		Weeks:     NewWeekRepository(pool),
		Trainings: NewTrainingRepository(pool),
		Exercises: NewExerciseRepository(pool),
		Patterns:  NewMovementPatternRepository(pool),
	}
}
