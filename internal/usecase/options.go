package usecase

import (
	"errors"
	"time"

	"movie-catalog/pkg/observability"
)

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	metrics *observability.Collector
	now     func() time.Time
}

func newServiceOptions(opts []ServiceOption) serviceOptions {
	o := serviceOptions{
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMetrics records the outcome and duration of every operation.
func WithMetrics(collector *observability.Collector) ServiceOption {
	return func(o *serviceOptions) {
		o.metrics = collector
	}
}

// WithClock overrides the source of UpdatedAt timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

func (o serviceOptions) observe(operation string, start time.Time, err error) {
	if o.metrics == nil {
		return
	}
	o.metrics.ObserveMovieOperation(operation, outcomeOf(err), time.Since(start))
}

func outcomeOf(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.As(err, &validationErr):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
