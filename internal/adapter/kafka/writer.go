package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/rainy-day/internal/config"
	"github.com/couchcryptid/rainy-day/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes assessment records to a Kafka topic.
// It implements advisor.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured assessments topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger.With("topic", cfg.KafkaTopic)}
}

// Publish writes one record. Records are keyed by ID so replays of the same
// record land on the same partition.
func (w *Writer) Publish(ctx context.Context, rec domain.AssessmentRecord) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish assessment %s: %w", rec.ID, err)
	}
	w.logger.Debug("assessment published", "id", rec.ID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AssessmentRecord into a Kafka message.
func serializeToMessage(rec domain.AssessmentRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(rec.Assessment.RiskLevel)},
			{Key: "soil_type", Value: []byte(rec.Assessment.SoilType)},
			{Key: "assessed_at", Value: []byte(rec.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
