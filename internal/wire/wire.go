package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/usecase"
	"movie-catalog/internal/validation"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/observability"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const metricsNamespace = "movie_catalog"

// App holds the wired HTTP surface.
type App struct {
	Router  *chi.Mux
	Metrics *observability.Collector
}

// PoolReporter is implemented by stores that sit on a connection pool.
type PoolReporter interface {
	PoolStats() observability.PoolStats
}

// Wiring builds services, handlers and routes on top of repo. pinger backs
// the health check and may be nil; when it also reports pool statistics
// they are exported with the other metrics.
func Wiring(repo *repository.Repository, pinger adaptor.Pinger, config *utils.Config, logger *zap.Logger) *App {
	metrics := observability.NewCollector(metricsNamespace)

	if pool, ok := pinger.(PoolReporter); ok {
		if err := metrics.RegisterPool(config.Database.Driver, pool.PoolStats); err != nil {
			logger.Warn("Failed to register pool metrics", zap.Error(err))
		}
	}

	service := usecase.NewService(repo, validation.NewMovieValidator(), logger, usecase.WithMetrics(metrics))
	handler := adaptor.NewHandler(service, pinger, logger)

	router := setupRouter(handler, metrics, config, logger)

	return &App{
		Router:  router,
		Metrics: metrics,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	metrics *observability.Collector,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	wireMovie(r, handler.Movie, metrics, config, logger)

	r.Get("/health", handler.Health.Check)
	r.Method("GET", "/metrics", metrics.Handler())

	return r
}
