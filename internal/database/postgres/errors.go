package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// classifyError wraps retryable driver failures with
// domain.ErrTransientStoreFailure and leaves everything else untouched.
func classifyError(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransientStoreFailure) {
		return err
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
	}
	return err
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeLockNotAvailable,
			PgErrorCodeSerializationFailure,
			PgErrorCodeDeadlockDetected,
			PgErrorCodeQueryCanceled,
			PgErrorCodeAdminShutdown,
			PgErrorCodeCannotConnectNow:
			return true
		}
		return false
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	return pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// wrap adds context and classifies the error in one step.
func wrap(msg string, err error) error {
	return classifyError(fmt.Errorf("%s: %w", msg, err))
}
