package commands

import (
	"errors"

	"workshop-engine/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrPartNotFound     = errs.New("part not found")
	ErrMechanicNotFound = errs.New("mechanic not found")

	// ErrInsufficientStock surfaces only at consume time; reservation-time
	// shortfalls route to the waiting outcome instead.
	ErrInsufficientStock = errs.New("insufficient stock")

	// ErrReservationConflict marks contention that survived the transaction
	// retry loop; callers may retry.
	ErrReservationConflict = errs.New("reservation conflict")

	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrNothingToUndo           = errs.New("nothing to undo")
	ErrInvalidStockAdjustment  = errs.New("stock adjustment would go negative")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

func isTaxonomyErr(err error) bool {
	for _, sentinel := range []error{
		ErrBookingNotFound, ErrPartNotFound, ErrMechanicNotFound,
		ErrInsufficientStock, ErrReservationConflict,
		ErrInvalidTransition, ErrNothingToUndo, ErrInvalidStockAdjustment,
	} {
		if errs.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// markStorageErr folds a failed unit-of-work error into the taxonomy:
// exhausted lock contention becomes the retryable conflict, anything else a
// database failure.
func markStorageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
			return errs.Mark(err, ErrReservationConflict)
		}
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
