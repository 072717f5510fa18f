package openweather

import (
	"log/slog"

	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/observability"
)

// NewFromConfig builds the production provider chain: the API client wrapped
// in retries and a circuit breaker, fronted by the TTL cache.
func NewFromConfig(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *CachedProvider {
	client := NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout,
		NewSimulatedRainfall(cfg.RainfallSeed), metrics, logger)
	resilient := NewResilientProvider(client, ResilienceSettings{
		MaxRetries:      cfg.WeatherMaxRetries,
		BreakerFailures: cfg.WeatherBreakerFailures,
		BreakerTimeout:  cfg.WeatherBreakerTimeout,
	}, metrics, logger)
	return NewCachedProvider(resilient, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, metrics)
}
