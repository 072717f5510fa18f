package openweather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
	"github.com/sony/gobreaker"
)

// ResilienceSettings tunes retries and the circuit breaker around a provider.
type ResilienceSettings struct {
	MaxRetries      int           // retries after the first attempt
	InitialBackoff  time.Duration // first retry delay, doubled on each retry
	BreakerFailures int           // consecutive failures that open the breaker
	BreakerTimeout  time.Duration // time the breaker stays open before probing
}

// ResilientProvider retries transient provider failures with exponential
// backoff and stops calling the provider while its circuit breaker is open.
// A location the provider does not know is neither retried nor counted as a
// breaker failure.
type ResilientProvider struct {
	inner    domain.WeatherProvider
	breaker  *gobreaker.CircuitBreaker
	settings ResilienceSettings
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewResilientProvider wraps inner with retry and circuit-breaker behavior.
func NewResilientProvider(inner domain.WeatherProvider, settings ResilienceSettings, metrics *observability.Metrics, logger *slog.Logger) *ResilientProvider {
	if settings.InitialBackoff <= 0 {
		settings.InitialBackoff = 200 * time.Millisecond
	}
	failures := uint32(max(settings.BreakerFailures, 1))

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openweather",
		Timeout: settings.BreakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrLocationNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("weather circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &ResilientProvider{
		inner:    inner,
		breaker:  breaker,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
	}
}

func (p *ResilientProvider) CurrentConditions(ctx context.Context, location string) (domain.WeatherConditions, error) {
	var cond domain.WeatherConditions

	operation := func() error {
		res, err := p.breaker.Execute(func() (interface{}, error) {
			return p.inner.CurrentConditions(ctx, location)
		})
		switch {
		case err == nil:
			cond = res.(domain.WeatherConditions)
			return nil
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			p.metrics.WeatherRequests.WithLabelValues("breaker_open").Inc()
			return backoff.Permanent(fmt.Errorf("weather provider unavailable: %w", err))
		case errors.Is(err, domain.ErrLocationNotFound):
			return backoff.Permanent(err)
		default:
			return err
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.settings.InitialBackoff
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(max(p.settings.MaxRetries, 0))), ctx)

	notify := func(err error, wait time.Duration) {
		p.logger.Warn("weather lookup failed, retrying",
			"location", location, "error", err, "backoff", wait)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return domain.WeatherConditions{}, err
	}
	return cond, nil
}

// BreakerState reports the circuit breaker's current state.
func (p *ResilientProvider) BreakerState() gobreaker.State {
	return p.breaker.State()
}
