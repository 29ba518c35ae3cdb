package repository

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"movie-catalog/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errTxClosed = errors.New("transaction already closed")

// memoryState is one version of the table. Published states are never
// written again; a transaction works on its own shallow copy and rows are
// replaced rather than mutated.
type memoryState struct {
	rows  map[uuid.UUID]*entity.Movie
	order []uuid.UUID
}

func newMemoryState() *memoryState {
	return &memoryState{rows: make(map[uuid.UUID]*entity.Movie)}
}

func (s *memoryState) clone() *memoryState {
	rows := make(map[uuid.UUID]*entity.Movie, len(s.rows))
	for id, movie := range s.rows {
		rows[id] = movie
	}
	return &memoryState{rows: rows, order: slices.Clone(s.order)}
}

// MemoryMovieStore keeps movies in process memory. Writers are serialized
// and each transaction publishes a new snapshot on success, so readers never
// observe a partial write.
type MemoryMovieStore struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *memoryState
	log   *zap.Logger
}

func NewMemoryMovieStore(log *zap.Logger) *MemoryMovieStore {
	return &MemoryMovieStore{
		state: newMemoryState(),
		log:   log.With(zap.String("repository", "movie"), zap.String("driver", "memory")),
	}
}

func (s *MemoryMovieStore) snapshot() *memoryMovieRepository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &memoryMovieRepository{state: s.state}
}

// WithinTx stages fn's writes on a private copy and publishes it only when
// fn returns nil.
func (s *MemoryMovieStore) WithinTx(ctx context.Context, fn func(movies MovieRepository) error) error {
	if err := ctx.Err(); err != nil {
		return newStorageError("begin transaction", err)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	staged := &memoryMovieRepository{state: s.snapshot().state.clone()}
	defer func() { staged.closed = true }()

	if err := fn(staged); err != nil {
		s.log.Debug("Transaction rolled back", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.state = staged.state
	s.mu.Unlock()

	return nil
}

func (s *MemoryMovieStore) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	var created *entity.Movie
	err := s.WithinTx(ctx, func(movies MovieRepository) error {
		var err error
		created, err = movies.Create(ctx, movie)
		return err
	})
	return created, err
}

func (s *MemoryMovieStore) Save(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	var saved *entity.Movie
	err := s.WithinTx(ctx, func(movies MovieRepository) error {
		var err error
		saved, err = movies.Save(ctx, movie)
		return err
	})
	return saved, err
}

func (s *MemoryMovieStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.WithinTx(ctx, func(movies MovieRepository) error {
		return movies.DeleteByID(ctx, id)
	})
}

func (s *MemoryMovieStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	return s.snapshot().FindByID(ctx, id)
}

func (s *MemoryMovieStore) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	return s.snapshot().FindAll(ctx)
}

func (s *MemoryMovieStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.snapshot().ExistsByID(ctx, id)
}

func (s *MemoryMovieStore) FindByTitleContains(ctx context.Context, substring string) ([]*entity.Movie, error) {
	return s.snapshot().FindByTitleContains(ctx, substring)
}

func (s *MemoryMovieStore) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	return s.snapshot().FindByGenre(ctx, genre)
}

func (s *MemoryMovieStore) FindByRatingAtLeast(ctx context.Context, threshold float64) ([]*entity.Movie, error) {
	return s.snapshot().FindByRatingAtLeast(ctx, threshold)
}

func (s *MemoryMovieStore) FindByReleaseDateBetween(ctx context.Context, start, end time.Time) ([]*entity.Movie, error) {
	return s.snapshot().FindByReleaseDateBetween(ctx, start, end)
}

// memoryMovieRepository runs against a single state and is owned by one
// goroutine at a time.
type memoryMovieRepository struct {
	state  *memoryState
	closed bool
}

func (r *memoryMovieRepository) check(ctx context.Context, op string) error {
	if r.closed {
		return newStorageError(op, errTxClosed)
	}
	if err := ctx.Err(); err != nil {
		return newStorageError(op, err)
	}
	return nil
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if err := r.check(ctx, "create movie"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &entity.Movie{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	record.ReplaceFields(movie)

	r.state.rows[record.ID] = record
	r.state.order = append(r.state.order, record.ID)

	return record.Clone(), nil
}

func (r *memoryMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	if err := r.check(ctx, "find movie"); err != nil {
		return nil, err
	}

	movie, ok := r.state.rows[id]
	if !ok {
		return nil, nil
	}
	return movie.Clone(), nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	return r.filter(ctx, "find all movies", func(*entity.Movie) bool { return true })
}

func (r *memoryMovieRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := r.check(ctx, "check movie existence"); err != nil {
		return false, err
	}

	_, ok := r.state.rows[id]
	return ok, nil
}

func (r *memoryMovieRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.check(ctx, "delete movie"); err != nil {
		return err
	}

	if _, ok := r.state.rows[id]; !ok {
		return nil
	}
	delete(r.state.rows, id)
	r.state.order = slices.DeleteFunc(r.state.order, func(candidate uuid.UUID) bool {
		return candidate == id
	})
	return nil
}

func (r *memoryMovieRepository) Save(ctx context.Context, movie *entity.Movie) (*entity.Movie, error) {
	if err := r.check(ctx, "save movie"); err != nil {
		return nil, err
	}

	current, ok := r.state.rows[movie.ID]
	if !ok {
		return nil, ErrMovieNotFound
	}

	record := &entity.Movie{Base: current.Base}
	record.ReplaceFields(movie)
	record.UpdatedAt = movie.UpdatedAt
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	r.state.rows[record.ID] = record
	return record.Clone(), nil
}

func (r *memoryMovieRepository) FindByTitleContains(ctx context.Context, substring string) ([]*entity.Movie, error) {
	needle := strings.ToLower(substring)
	return r.filter(ctx, "find movies by title", func(m *entity.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), needle)
	})
}

func (r *memoryMovieRepository) FindByGenre(ctx context.Context, genre string) ([]*entity.Movie, error) {
	return r.filter(ctx, "find movies by genre", func(m *entity.Movie) bool {
		return m.Genre != nil && *m.Genre == genre
	})
}

func (r *memoryMovieRepository) FindByRatingAtLeast(ctx context.Context, threshold float64) ([]*entity.Movie, error) {
	return r.filter(ctx, "find movies by rating", func(m *entity.Movie) bool {
		return m.Rating != nil && *m.Rating >= threshold
	})
}

func (r *memoryMovieRepository) FindByReleaseDateBetween(ctx context.Context, start, end time.Time) ([]*entity.Movie, error) {
	from, to := entity.DateOf(start), entity.DateOf(end)
	return r.filter(ctx, "find movies by release date", func(m *entity.Movie) bool {
		if m.ReleaseDate == nil {
			return false
		}
		return !m.ReleaseDate.Before(from) && !m.ReleaseDate.After(to)
	})
}

func (r *memoryMovieRepository) filter(ctx context.Context, op string, keep func(*entity.Movie) bool) ([]*entity.Movie, error) {
	if err := r.check(ctx, op); err != nil {
		return nil, err
	}

	movies := make([]*entity.Movie, 0)
	for _, id := range r.state.order {
		if movie := r.state.rows[id]; keep(movie) {
			movies = append(movies, movie.Clone())
		}
	}
	return movies, nil
}

var (
	_ MovieRepository = (*MemoryMovieStore)(nil)
	_ Transactor      = (*MemoryMovieStore)(nil)
)
