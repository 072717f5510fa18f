package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the advisor service.
type Metrics struct {
	Assessments      *prometheus.CounterVec // labels: soil_type, risk_level
	AssessmentErrors *prometheus.CounterVec // labels: reason={unknown_soil_type,invalid_rainfall,location_required,weather,other}
	RiskScore        prometheus.Histogram
	PublishErrors    prometheus.Counter

	// Weather lookup metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,error,not_found,breaker_open}
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}
	WeatherAPIDuration prometheus.Histogram
	WeatherEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith creates all service metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainy_day",
			Name:      "assessments_total",
			Help:      "Completed flood-risk assessments by soil type and risk level.",
		}, []string{"soil_type", "risk_level"}),
		AssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainy_day",
			Name:      "assessment_errors_total",
			Help:      "Rejected or failed assessment requests by reason.",
		}, []string{"reason"}),
		RiskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainy_day",
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores.",
			Buckets:   []float64{2.5, 5, 10, 15, 20, 27.5, 35, 50, 75, 100, 200},
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainy_day",
			Name:      "publish_errors_total",
			Help:      "Assessment records that could not be published.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainy_day",
			Name:      "weather_requests_total",
			Help:      "Weather API requests by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainy_day",
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainy_day",
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeatherMap API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainy_day",
			Name:      "weather_enabled",
			Help:      "1 when weather lookup is enabled, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		m.Assessments,
		m.AssessmentErrors,
		m.RiskScore,
		m.PublishErrors,
		m.WeatherRequests,
		m.WeatherCache,
		m.WeatherAPIDuration,
		m.WeatherEnabled,
	)

	return m
}
