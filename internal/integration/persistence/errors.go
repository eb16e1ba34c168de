// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerror "github.com/money-saver/backend/internal/domain/error"
)

// translateWriteError maps driver-level constraint violations to domain
// sentinels. The gorm connection runs with TranslateError enabled, so both
// the postgres and sqlite drivers surface duplicates as ErrDuplicatedKey.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrDuplicateWeekNumber
	}
	return classifyStorageError(err)
}

// classifyStorageError tags timed-out or cancelled driver calls and postgres
// connection failures as ErrTransientStorage so callers may retry them.
// Anything else passes through unchanged.
func classifyStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domainerror.ErrTransientStorage, err)
	}

	// Class 08 covers connection exceptions (connection_failure,
	// connection_does_not_exist, ...).
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return fmt.Errorf("%w: %v", domainerror.ErrTransientStorage, err)
	}
	// The request never reached the server, so retrying is safe.
	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", domainerror.ErrTransientStorage, err)
	}
	return err
}
