package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrMovieNotFound is returned by Save when the row to overwrite is gone.
var ErrMovieNotFound = errors.New("movie not found")

// StorageError reports a failure of the store itself. It is never a
// declared outcome of an operation and is not retried. Services return it
// wrapped with operation context, so callers match it with errors.As
// rather than comparing the error value.
type StorageError struct {
	Op   string
	Code string // SQLSTATE, empty when the failure did not come from the server
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConstraintViolation reports whether the server rejected the write on an
// integrity constraint.
func (e *StorageError) IsConstraintViolation() bool {
	return e.Code != "" && pgerrcode.IsIntegrityConstraintViolation(e.Code)
}

func newStorageError(op string, err error) *StorageError {
	se := &StorageError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Code = pgErr.Code
	}

	return se
}
