package repository

import (
	"context"

	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn inside one unit of work. The repository handed to fn is
// bound to that unit; it commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(movies MovieRepository) error) error
}

type Repository struct {
	Movie MovieRepository
	Tx    Transactor
}

// NewRepository builds the PostgreSQL-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(db, log),
		Tx:    &pgTransactor{db: db, log: log},
	}
}

// NewMemoryRepository builds repositories that live in process memory.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := NewMemoryMovieStore(log)
	return &Repository{
		Movie: store,
		Tx:    store,
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(movies MovieRepository) error) error {
	var fnErr error
	err := database.RunInTx(ctx, t.db, func(tx pgx.Tx) error {
		fnErr = fn(NewMovieRepository(tx, t.log))
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed, not the unit of work itself
		return newStorageError("run transaction", err)
	}
	return err
}
