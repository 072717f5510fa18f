package openweather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

type fixedRainfall float64

func (f fixedRainfall) EstimateRainfallMM(string) float64 { return float64(f) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string, m *observability.Metrics) *Client {
	return NewClient(testAPIKey, baseURL, 5*time.Second, fixedRainfall(42.5), m, testLogger())
}

func TestClient_CurrentConditions_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Nairobi", r.URL.Query().Get("q"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{
			"name": "Nairobi",
			"main": {"temp": 21.4, "humidity": 68},
			"weather": [{"main": "Rain", "description": "light rain"}]
		}`))
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	c := testClient(srv.URL, m)

	cond, err := c.CurrentConditions(context.Background(), "Nairobi")
	require.NoError(t, err)

	assert.Equal(t, domain.WeatherConditions{
		Location:     "Nairobi",
		TemperatureC: 21.4,
		HumidityPct:  68,
		Description:  "light rain",
		RainfallMM:   42.5,
	}, cond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherRequests.WithLabelValues("success")))
}

func TestClient_CurrentConditions_EmptyNameFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	cond, err := c.CurrentConditions(context.Background(), "Kisumu")
	require.NoError(t, err)
	assert.Equal(t, "Kisumu", cond.Location)
	assert.Empty(t, cond.Description)
}

func TestClient_CurrentConditions_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	c := testClient(srv.URL, m)

	_, err := c.CurrentConditions(context.Background(), "Atlantis")
	require.ErrorIs(t, err, domain.ErrLocationNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherRequests.WithLabelValues("not_found")))
}

func TestClient_CurrentConditions_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	m := observability.NewMetricsForTesting()
	c := testClient(srv.URL, m)

	_, err := c.CurrentConditions(context.Background(), "Nairobi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLocationNotFound)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WeatherRequests.WithLabelValues("error")))
}

func TestClient_CurrentConditions_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.CurrentConditions(context.Background(), "Nairobi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_CurrentConditions_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testAPIKey, srv.URL, 50*time.Millisecond, fixedRainfall(0), observability.NewMetricsForTesting(), testLogger())
	_, err := c.CurrentConditions(context.Background(), "Nairobi")
	require.Error(t, err)
}

func TestNewFromConfig_ServesFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"name":"Nairobi","main":{"temp":20,"humidity":50},"weather":[]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		WeatherAPIKey:          testAPIKey,
		WeatherBaseURL:         srv.URL,
		WeatherTimeout:         time.Second,
		WeatherCacheSize:       10,
		WeatherCacheTTL:        time.Minute,
		WeatherMaxRetries:      1,
		WeatherBreakerFailures: 3,
		WeatherBreakerTimeout:  time.Second,
		RainfallSeed:           1,
	}
	p := NewFromConfig(cfg, observability.NewMetricsForTesting(), testLogger())

	first, err := p.CurrentConditions(context.Background(), "Nairobi")
	require.NoError(t, err)
	second, err := p.CurrentConditions(context.Background(), "nairobi")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}
