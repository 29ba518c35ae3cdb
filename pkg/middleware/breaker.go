package middleware

import (
	"errors"
	"net/http"

	"movie-catalog/pkg/observability"
	"movie-catalog/pkg/utils"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const breakerHalfOpenRequests = 3

// errServerFailure marks a request that ended in a 5xx response.
var errServerFailure = errors.New("server error response")

// CircuitBreaker answers 503 while the downstream store keeps failing. A
// response with a 5xx status counts as a failure; once at least
// MinRequests have been seen and the failure ratio reaches FailureRatio the
// breaker opens for OpenTimeout. collector may be nil.
func CircuitBreaker(name string, config utils.BreakerConfig, logger *zap.Logger, collector *observability.Collector) func(http.Handler) http.Handler {
	log := logger.With(zap.String("breaker", name))

	if collector != nil {
		collector.SetBreakerState(name, float64(gobreaker.StateClosed))
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenRequests,
		Interval:    config.OpenTimeout,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if collector != nil {
				collector.SetBreakerState(name, float64(to))
			}
		},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := cb.Execute(func() (any, error) {
				rw := newResponseWriter(w)
				next.ServeHTTP(rw, r)

				if rw.statusCode >= http.StatusInternalServerError {
					return nil, errServerFailure
				}
				return nil, nil
			})

			switch {
			case errors.Is(err, gobreaker.ErrOpenState):
				log.Warn("Request rejected, circuit open",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseServiceUnavailable(w, "Service temporarily unavailable")
			case errors.Is(err, gobreaker.ErrTooManyRequests):
				log.Warn("Request rejected, circuit half-open",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseServiceUnavailable(w, "Service temporarily unavailable")
			}
			// any other error already has its response written
		})
	}
}
