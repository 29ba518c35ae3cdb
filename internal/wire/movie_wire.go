package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/observability"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	metrics *observability.Collector,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/movies", func(r chi.Router) {
		if config.Breaker.Enabled {
			r.Use(middleware.CircuitBreaker("movies", config.Breaker, log, metrics))
		}

		r.Get("/", movieHandler.GetMovies)        // GET /api/movies
		r.Post("/", movieHandler.CreateMovie)     // POST /api/movies
		r.Get("/{id}", movieHandler.GetMovieByID) // GET /api/movies/{id}
		r.Put("/{id}", movieHandler.UpdateMovie)  // PUT /api/movies/{id}
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
