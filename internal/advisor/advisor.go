package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
)

var (
	// ErrLocationRequired is returned by location-based operations given a blank location.
	ErrLocationRequired = errors.New("location required")
	// ErrWeatherDisabled is returned when no weather provider is configured.
	ErrWeatherDisabled = errors.New("weather lookup disabled")
)

// Publisher forwards completed assessment records downstream.
type Publisher interface {
	Publish(ctx context.Context, rec domain.AssessmentRecord) error
}

// Advisor runs planting assessments from manual rainfall figures or from
// current weather at a location.
type Advisor struct {
	weather   domain.WeatherProvider
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates an Advisor. weather and publisher may be nil to disable
// location lookups and publishing respectively.
func New(weather domain.WeatherProvider, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Advisor {
	return &Advisor{
		weather:   weather,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// WeatherEnabled reports whether location-based assessments are available.
func (a *Advisor) WeatherEnabled() bool {
	return a.weather != nil
}

// MarkReady flags the advisor as ready to serve traffic.
func (a *Advisor) MarkReady() {
	a.ready.Store(true)
}

// CheckReadiness returns nil once MarkReady has been called.
func (a *Advisor) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("advisor is not ready")
	}
	return nil
}

// AssessManual scores a rainfall figure supplied by the caller.
func (a *Advisor) AssessManual(ctx context.Context, rainfallMM float64, soilID string) (domain.AssessmentRecord, error) {
	assessment, err := assessNonNegative(rainfallMM, soilID)
	if err != nil {
		a.metrics.AssessmentErrors.WithLabelValues(errorReason(err)).Inc()
		return domain.AssessmentRecord{}, err
	}
	return a.complete(ctx, domain.NewAssessmentRecord(domain.SourceManual, assessment, nil)), nil
}

// AssessLocation fetches current conditions for location and scores their
// rainfall figure. The soil is validated before any lookup is made.
func (a *Advisor) AssessLocation(ctx context.Context, location, soilID string) (domain.AssessmentRecord, error) {
	if _, err := domain.LookupSoil(soilID); err != nil {
		a.metrics.AssessmentErrors.WithLabelValues("unknown_soil_type").Inc()
		return domain.AssessmentRecord{}, err
	}

	cond, err := a.LookupWeather(ctx, location)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	assessment, err := assessNonNegative(cond.RainfallMM, soilID)
	if err != nil {
		a.metrics.AssessmentErrors.WithLabelValues(errorReason(err)).Inc()
		return domain.AssessmentRecord{}, err
	}
	return a.complete(ctx, domain.NewAssessmentRecord(domain.SourceWeather, assessment, &cond)), nil
}

// LookupWeather returns current conditions for location without assessing them.
func (a *Advisor) LookupWeather(ctx context.Context, location string) (domain.WeatherConditions, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		a.metrics.AssessmentErrors.WithLabelValues("location_required").Inc()
		return domain.WeatherConditions{}, ErrLocationRequired
	}
	if a.weather == nil {
		a.metrics.AssessmentErrors.WithLabelValues("weather").Inc()
		return domain.WeatherConditions{}, ErrWeatherDisabled
	}

	cond, err := a.weather.CurrentConditions(ctx, location)
	if err != nil {
		a.metrics.AssessmentErrors.WithLabelValues("weather").Inc()
		a.logger.Warn("weather lookup failed", "location", location, "error", err)
		return domain.WeatherConditions{}, fmt.Errorf("lookup weather for %q: %w", location, err)
	}
	return cond, nil
}

// complete records metrics, logs and publishes a finished assessment.
func (a *Advisor) complete(ctx context.Context, rec domain.AssessmentRecord) domain.AssessmentRecord {
	as := rec.Assessment
	a.metrics.Assessments.WithLabelValues(string(as.SoilType), string(as.RiskLevel)).Inc()
	a.metrics.RiskScore.Observe(as.RiskScore)

	a.logger.Info("assessment completed",
		"id", rec.ID,
		"source", rec.Source,
		"soil_type", as.SoilType,
		"rainfall_mm", as.RainfallMM,
		"risk_score", as.RiskScore,
		"risk_level", as.RiskLevel,
	)

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, rec); err != nil {
			a.metrics.PublishErrors.Inc()
			a.logger.Warn("publish assessment failed", "id", rec.ID, "error", err)
		}
	}
	return rec
}

// assessNonNegative runs the engine, then rejects negative rainfall. The
// engine resolves the soil first so an unknown soil is reported over bad input.
func assessNonNegative(rainfallMM float64, soilID string) (domain.Assessment, error) {
	assessment, err := domain.Assess(rainfallMM, soilID)
	if err != nil {
		return domain.Assessment{}, err
	}
	if rainfallMM < 0 {
		return domain.Assessment{}, fmt.Errorf("%w: %v is negative", domain.ErrInvalidRainfall, rainfallMM)
	}
	return assessment, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownSoilType):
		return "unknown_soil_type"
	case errors.Is(err, domain.ErrInvalidRainfall):
		return "invalid_rainfall"
	default:
		return "other"
	}
}
