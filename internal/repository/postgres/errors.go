package postgres

import (
	"errors"

	"fitplan/training-planner/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the services pattern-match on; everything else propagates
// as an internal error with the backend's own message attached.
const (
	pgCodeUniqueViolation   = "23505"
	pgCodePermissionDenied  = "42501"
	pgCodeRLSPolicyViolated = "42P17"
)

// mapError translates driver errors into the repository error taxonomy,
// preserving the backend's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return &repository.Error{Code: repository.CodeDuplicate, Message: pgErr.Message}
		case pgCodePermissionDenied, pgCodeRLSPolicyViolated:
			return &repository.Error{Code: repository.CodePermissionDenied, Message: pgErr.Message}
		default:
			return &repository.Error{Code: repository.CodeInternal, Message: pgErr.Message}
		}
	}

	return err
}
