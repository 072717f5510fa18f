package kafka

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	rec := domain.AssessmentRecord{
		ID:     "rec-1",
		Source: domain.SourceManual,
		Assessment: domain.Assessment{
			RainfallMM: 60,
			SoilType:   domain.SoilClay,
			RiskScore:  400,
			RiskLevel:  domain.RiskVeryHigh,
		},
		AssessedAt: now,
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte("rec-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"risk_level":"very_high"`)
	assert.NotContains(t, string(msg.Value), `"conditions"`)
	assert.Equal(t, []kafkago.Header{
		{Key: "risk_level", Value: []byte("very_high")},
		{Key: "soil_type", Value: []byte("clay")},
		{Key: "assessed_at", Value: []byte("2024-04-26T15:10:00Z")},
	}, msg.Headers)
}

func TestSerializeToMessage_WeatherRecord(t *testing.T) {
	rec := domain.AssessmentRecord{
		ID:         "rec-2",
		Source:     domain.SourceWeather,
		Location:   "Nairobi",
		Conditions: &domain.WeatherConditions{Location: "Nairobi", RainfallMM: 12.5},
		Assessment: domain.Assessment{SoilType: domain.SoilSand, RiskLevel: domain.RiskLow},
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)
	assert.Contains(t, string(msg.Value), `"location":"Nairobi"`)
	assert.Contains(t, string(msg.Value), `"source":"weather"`)
}

func TestNewWriter_UsesConfiguredTopic(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "flood-risk-assessments"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer func() { _ = w.Close() }()

	assert.Equal(t, "flood-risk-assessments", w.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, w.writer.RequiredAcks)
}
