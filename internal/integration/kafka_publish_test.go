//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/rainy-day/internal/adapter/kafka"
	"github.com/couchcryptid/rainy-day/internal/advisor"
	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	"github.com/couchcryptid/rainy-day/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-assessments"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("rainy-day-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestAdvisorPublishesToKafka runs manual assessments through the advisor with
// a real Kafka writer and reads the records back from the topic.
func TestAdvisorPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	adv := advisor.New(nil, writer, discardLogger(), metrics)

	inputs := []struct {
		rainfall float64
		soil     string
		level    domain.RiskLevel
	}{
		{15, "loam", domain.RiskLow},
		{30, "clay", domain.RiskVeryHigh},
		{45, "sand", domain.RiskModerate},
	}
	ids := make(map[string]domain.RiskLevel, len(inputs))
	for _, in := range inputs {
		rec, err := adv.AssessManual(ctx, in.rainfall, in.soil)
		require.NoError(t, err)
		ids[rec.ID] = in.level
	}

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for range inputs {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from assessments topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}

		var rec domain.AssessmentRecord
		require.NoError(t, json.Unmarshal(msg.Value, &rec))

		want, ok := ids[string(msg.Key)]
		require.True(t, ok, "unexpected key %q", msg.Key)
		assert.Equal(t, string(msg.Key), rec.ID)
		assert.Equal(t, want, rec.Assessment.RiskLevel)
		assert.Equal(t, string(want), headers["risk_level"])
		assert.Equal(t, string(rec.Assessment.SoilType), headers["soil_type"])
		_, err = time.Parse(time.RFC3339, headers["assessed_at"])
		assert.NoError(t, err, "assessed_at should be valid RFC3339")
	}
}
