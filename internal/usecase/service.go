package usecase

import (
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	Movie  MovieService
	Search SearchService
}

func NewService(repo *repository.Repository, validator validation.Validator, log *zap.Logger, opts ...ServiceOption) *Service {
	return &Service{
		Movie:  NewMovieService(repo, validator, log, opts...),
		Search: NewSearchService(repo, log, opts...),
	}
}
