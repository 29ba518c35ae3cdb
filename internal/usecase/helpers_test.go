package usecase

import (
	"context"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := entity.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}

func newTestService(t *testing.T, opts ...ServiceOption) (*Service, *repository.Repository) {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	return NewService(repo, validation.NewMovieValidator(), zap.NewNop(), opts...), repo
}

// faultyRepository performs the real write and then reports failure, so a
// test can tell whether the surrounding transaction discarded it.
type faultyRepository struct {
	repository.MovieRepository
	saveErr   error
	deleteErr error
	findErr   error
}

func (r *faultyRepository) Save(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	saved, err := r.MovieRepository.Save(ctx, movie)
	if err != nil || r.saveErr == nil {
		return saved, err
	}
	return nil, r.saveErr
}

func (r *faultyRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.MovieRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	return r.deleteErr
}

func (r *faultyRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.MovieRepository.FindAll(ctx)
}

type faultyTransactor struct {
	inner repository.Transactor
	wrap  func(repository.MovieRepository) repository.MovieRepository
}

func (t *faultyTransactor) WithinTx(ctx context.Context, fn func(movies repository.MovieRepository) error) error {
	return t.inner.WithinTx(ctx, func(movies repository.MovieRepository) error {
		return fn(t.wrap(movies))
	})
}
