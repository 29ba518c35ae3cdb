package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"go.uber.org/zap"
)

// SearchFilter names the single gateway query a search resolves to.
type SearchFilter string

const (
	FilterTitle       SearchFilter = "title"
	FilterGenre       SearchFilter = "genre"
	FilterRating      SearchFilter = "rating"
	FilterReleaseDate SearchFilter = "release_date"
	FilterAll         SearchFilter = "all"
)

// SearchCriteria holds the optional search inputs. Only one of them is
// applied per search, see Filter.
type SearchCriteria struct {
	Title     *string
	Genre     *string
	MinRating *float64
	StartDate *time.Time
	EndDate   *time.Time
}

// Filter picks the criterion to honor: title, then genre, then minimum
// rating, then the release date range when both bounds are set. Anything
// else lists every movie.
func Filter(criteria SearchCriteria) SearchFilter {
	switch {
	case criteria.Title != nil:
		return FilterTitle
	case criteria.Genre != nil:
		return FilterGenre
	case criteria.MinRating != nil:
		return FilterRating
	case criteria.StartDate != nil && criteria.EndDate != nil:
		return FilterReleaseDate
	default:
		return FilterAll
	}
}

type SearchService interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]*entity.Movie, error)
}

type searchService struct {
	repo *repository.Repository
	opts serviceOptions
	log  *zap.Logger
}

func NewSearchService(repo *repository.Repository, log *zap.Logger, opts ...ServiceOption) SearchService {
	return &searchService{
		repo: repo,
		opts: newServiceOptions(opts),
		log:  log.With(zap.String("service", "search")),
	}
}

func (s *searchService) Search(ctx context.Context, criteria SearchCriteria) (movies []*entity.Movie, err error) {
	defer func(start time.Time) { s.opts.observe("search", start, err) }(time.Now())

	filter := Filter(criteria)
	movies, err = s.query(ctx, filter, criteria)
	if err != nil {
		s.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("filter", string(filter)),
		)
		return nil, fmt.Errorf("search movies by %s: %w", filter, err)
	}

	s.log.Debug("Movies searched",
		zap.String("filter", string(filter)),
		zap.Int("count", len(movies)),
	)

	return movies, nil
}

func (s *searchService) query(ctx context.Context, filter SearchFilter, criteria SearchCriteria) ([]*entity.Movie, error) {
	movies := s.repo.Movie

	switch filter {
	case FilterTitle:
		return movies.FindByTitleContains(ctx, *criteria.Title)
	case FilterGenre:
		return movies.FindByGenre(ctx, *criteria.Genre)
	case FilterRating:
		return movies.FindByRatingAtLeast(ctx, *criteria.MinRating)
	case FilterReleaseDate:
		return movies.FindByReleaseDateBetween(ctx, *criteria.StartDate, *criteria.EndDate)
	default:
		return movies.FindAll(ctx)
	}
}
