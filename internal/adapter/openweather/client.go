package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
)

// Client implements domain.WeatherProvider using the OpenWeatherMap
// current-weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	rainfall   RainfallEstimator
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeatherMap client. The API does not report a
// 24-hour rainfall total for the current-weather endpoint, so the rainfall
// figure comes from the given estimator.
func NewClient(apiKey, baseURL string, timeout time.Duration, rainfall RainfallEstimator, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  baseURL,
		rainfall: rainfall,
		metrics:  metrics,
		logger:   logger,
	}
}

// CurrentConditions looks up current weather by city name.
func (c *Client) CurrentConditions(ctx context.Context, location string) (domain.WeatherConditions, error) {
	params := url.Values{
		"q":     {location},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherConditions{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.WeatherConditions{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.WeatherRequests.WithLabelValues("not_found").Inc()
		return domain.WeatherConditions{}, fmt.Errorf("%w: %q", domain.ErrLocationNotFound, location)
	case resp.StatusCode != http.StatusOK:
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return domain.WeatherConditions{}, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var owm response
	if err := json.NewDecoder(resp.Body).Decode(&owm); err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.WeatherConditions{}, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.WeatherRequests.WithLabelValues("success").Inc()

	cond := domain.WeatherConditions{
		Location:     owm.Name,
		TemperatureC: owm.Main.Temp,
		HumidityPct:  owm.Main.Humidity,
		RainfallMM:   c.rainfall.EstimateRainfallMM(owm.Name),
	}
	if cond.Location == "" {
		cond.Location = location
	}
	if len(owm.Weather) > 0 {
		cond.Description = owm.Weather[0].Description
	}

	c.logger.Debug("weather conditions fetched",
		"location", cond.Location,
		"temperature_c", cond.TemperatureC,
		"rainfall_mm", cond.RainfallMM,
	)
	return cond, nil
}

// OpenWeatherMap API response types.

type response struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []conditionDescription `json:"weather"`
}

type conditionDescription struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}
