package adaptor

import (
	"movie-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie  *MovieHandler
	Health *HealthHandler
}

// NewHandler builds the HTTP handlers. pinger may be nil when the store
// has nothing to ping.
func NewHandler(service *usecase.Service, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Movie:  NewMovieHandler(service.Movie, service.Search, log),
		Health: NewHealthHandler(pinger, log),
	}
}
