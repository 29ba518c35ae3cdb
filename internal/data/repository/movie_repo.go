package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository is the only way in and out of durable movie storage.
// Lookups that find nothing return (nil, nil); lists come back in
// insertion order.
type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Save(ctx context.Context, movie *entity.Movie) (*entity.Movie, error)

	// Single-criterion filters
	FindByTitleContains(ctx context.Context, substring string) ([]*entity.Movie, error)
	FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error)
	FindByRatingAtLeast(ctx context.Context, threshold float64) ([]*entity.Movie, error)
	FindByReleaseDateBetween(ctx context.Context, start, end time.Time) ([]*entity.Movie, error)
}

const movieColumns = `
	id,
	title,
	description,
	director,
	genre,
	rating,
	release_date,
	created_at,
	updated_at
`

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	record := &entity.Movie{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	record.ReplaceFields(movie)

	query := fmt.Sprintf(`
		INSERT INTO movies (id, title, description, director, genre, rating,
		                    release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, movieColumns)

	created, err := scanMovie(r.db.QueryRow(ctx, query,
		record.ID,
		record.Title,
		record.Description,
		record.Director,
		record.Genre,
		record.Rating,
		record.ReleaseDate,
		record.CreatedAt,
		record.UpdatedAt,
	))
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return nil, newStorageError("create movie", err)
	}

	return created, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, newStorageError("find movie", err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	return r.list(ctx, "find all movies", "")
}

func (r *movieRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check movie existence",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return false, newStorageError("check movie existence", err)
	}

	return exists, nil
}

func (r *movieRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return newStorageError("delete movie", err)
	}

	r.log.Debug("Movie deleted",
		zap.String("movie_id", id.String()),
		zap.Int64("rows_affected", result.RowsAffected()),
	)
	return nil
}

func (r *movieRepository) Save(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	record := &entity.Movie{Base: movie.Base}
	record.ReplaceFields(movie)
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query := fmt.Sprintf(`
		UPDATE movies
		SET title = $2, description = $3, director = $4, genre = $5,
		    rating = $6, release_date = $7, updated_at = $8
		WHERE id = $1
		RETURNING %s
	`, movieColumns)

	saved, err := scanMovie(r.db.QueryRow(ctx, query,
		record.ID,
		record.Title,
		record.Description,
		record.Director,
		record.Genre,
		record.Rating,
		record.ReleaseDate,
		record.UpdatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		r.log.Error("Failed to save movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return nil, newStorageError("save movie", err)
	}

	return saved, nil
}

func (r *movieRepository) FindByTitleContains(ctx context.Context, substring string) ([]*entity.Movie, error) {
	pattern := "%" + escapeLike(substring) + "%"
	return r.list(ctx, "find movies by title", `WHERE title ILIKE $1`, pattern)
}

func (r *movieRepository) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	return r.list(ctx, "find movies by genre", `WHERE genre = $1`, genre)
}

func (r *movieRepository) FindByRatingAtLeast(ctx context.Context, threshold float64) ([]*entity.Movie, error) {
	return r.list(ctx, "find movies by rating", `WHERE rating >= $1`, threshold)
}

func (r *movieRepository) FindByReleaseDateBetween(ctx context.Context, start, end time.Time) ([]*entity.Movie, error) {
	return r.list(ctx, "find movies by release date",
		`WHERE release_date BETWEEN $1 AND $2`, entity.DateOf(start), entity.DateOf(end))
}

func (r *movieRepository) list(ctx context.Context, op, where string, args ...any) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(" FROM movies ")
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY seq")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to query movies", zap.Error(err), zap.String("operation", op))
		return nil, newStorageError(op, err)
	}
	defer rows.Close()

	movies := make([]*entity.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, newStorageError(op, err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, newStorageError(op, err)
	}

	r.log.Debug("Movies found",
		zap.String("operation", op),
		zap.Int("count", len(movies)),
	)

	return movies, nil
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Director,
		&movie.Genre,
		&movie.Rating,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if movie.ReleaseDate != nil {
		d := entity.DateOf(*movie.ReleaseDate)
		movie.ReleaseDate = &d
	}

	return &movie, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
