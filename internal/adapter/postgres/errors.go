package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/carematch-backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped, they pass through.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if IsNoRows(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case pgErr.Code == "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		case strings.HasPrefix(pgErr.Code, "22"): // data_exception: NUL in text, bad encoding, out of range
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, markTransient(err))
}

// markTransient tags errors a client may retry with domain.ErrTransient and
// returns every other error unchanged.
func markTransient(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isTransientCode(pgErr.Code) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return err
}

// isTransientCode reports retryable server conditions: serialization
// failure, deadlock, connection exceptions (class 08) and admin shutdown.
func isTransientCode(code string) bool {
	switch code {
	case "40001", "40P01", "57P01":
		return true
	}
	return strings.HasPrefix(code, "08")
}

// IsNoRows reports whether err means a query returned no row, as opposed to a
// constraint violation that MapError would also report as not found.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)
}
