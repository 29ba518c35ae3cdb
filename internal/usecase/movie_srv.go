package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	ListAll(ctx context.Context) ([]*entity.Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Create(ctx context.Context, candidate *entity.Movie) (*entity.Movie, error)
	Update(ctx context.Context, id uuid.UUID, candidate *entity.Movie) (*entity.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieService struct {
	repo      *repository.Repository
	validator validation.Validator
	opts      serviceOptions
	log       *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	validator validation.Validator,
	log *zap.Logger,
	opts ...ServiceOption,
) MovieService {
	return &movieService{
		repo:      repo,
		validator: validator,
		opts:      newServiceOptions(opts),
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListAll(ctx context.Context) (movies []*entity.Movie, err error) {
	defer func(start time.Time) { s.opts.observe("list", start, err) }(time.Now())

	movies, err = s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	s.log.Debug("Movies listed", zap.Int("count", len(movies)))
	return movies, nil
}

func (s *movieService) GetByID(ctx context.Context, id uuid.UUID) (movie *entity.Movie, err error) {
	defer func(start time.Time) { s.opts.observe("get", start, err) }(time.Now())

	movie, err = s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	if movie == nil {
		return nil, &NotFoundError{ID: id}
	}

	return movie, nil
}

func (s *movieService) Create(ctx context.Context, candidate *entity.Movie) (created *entity.Movie, err error) {
	defer func(start time.Time) { s.opts.observe("create", start, err) }(time.Now())

	if violations := s.validator.Validate(candidate); len(violations) > 0 {
		s.log.Warn("Movie rejected", zap.Any("violations", violations))
		return nil, &ValidationError{Violations: violations}
	}
	if candidate.IsPersisted() {
		s.log.Debug("Ignoring caller supplied movie ID", zap.String("movie_id", candidate.ID.String()))
	}

	err = s.repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
		var err error
		created, err = movies.Create(ctx, candidate)
		return err
	})
	if err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", candidate.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", created.ID.String()),
		zap.String("title", created.Title),
	)

	return created, nil
}

// Update replaces every mutable field of the stored movie with the
// candidate's, absent fields included. Existence is checked before
// validation.
func (s *movieService) Update(ctx context.Context, id uuid.UUID, candidate *entity.Movie) (updated *entity.Movie, err error) {
	defer func(start time.Time) { s.opts.observe("update", start, err) }(time.Now())

	err = s.repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
		current, err := movies.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find movie: %w", err)
		}
		if current == nil {
			return &NotFoundError{ID: id}
		}

		if violations := s.validator.Validate(candidate); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}

		current.ReplaceFields(candidate)
		current.UpdatedAt = s.opts.now()

		updated, err = movies.Save(ctx, current)
		if errors.Is(err, repository.ErrMovieNotFound) {
			// deleted between the read and the write
			return &NotFoundError{ID: id}
		}
		if err != nil {
			return fmt.Errorf("save movie: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("update", id, err)
		return nil, domainError("update movie", err)
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", id.String()),
		zap.String("title", updated.Title),
	)

	return updated, nil
}

func (s *movieService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer func(start time.Time) { s.opts.observe("delete", start, err) }(time.Now())

	err = s.repo.Tx.WithinTx(ctx, func(movies repository.MovieRepository) error {
		exists, err := movies.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("check movie: %w", err)
		}
		if !exists {
			return &NotFoundError{ID: id}
		}
		return movies.DeleteByID(ctx, id)
	})
	if err != nil {
		s.logFailure("delete", id, err)
		return domainError("delete movie", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (s *movieService) logFailure(operation string, id uuid.UUID, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("movie_id", id.String()),
	}
	if outcomeOf(err) == outcomeError {
		s.log.Error("Movie operation failed", fields...)
		return
	}
	s.log.Warn("Movie operation rejected", fields...)
}

// domainError returns not-found and validation failures as they are and
// wraps everything else with context.
func domainError(op string, err error) error {
	var validationErr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &validationErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
