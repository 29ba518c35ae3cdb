package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewStorageError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, Message: "duplicate key"}

	err := newStorageError("create movie", fmt.Errorf("insert: %w", pgErr))

	assert.Equal(t, pgerrcode.UniqueViolation, err.Code)
	assert.True(t, err.IsConstraintViolation())
	assert.ErrorIs(t, err, pgErr)
	assert.Contains(t, err.Error(), "failed to create movie")
}

func TestStorageErrorWithoutServerCode(t *testing.T) {
	err := newStorageError("find movie", errors.New("connection reset"))

	assert.Empty(t, err.Code)
	assert.False(t, err.IsConstraintViolation())
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"plain":      "plain",
		"100%":       `100\%`,
		"snake_case": `snake\_case`,
		`back\slash`: `back\\slash`,
		`%_\`:        `\%\_\\`,
	}

	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), in)
	}
}
