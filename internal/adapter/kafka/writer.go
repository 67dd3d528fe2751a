package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/urbanshade-service/internal/config"
	"github.com/couchcryptid/urbanshade-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces simulation records to a Kafka topic.
// It implements planner.RecordPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured simulation topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSimulationTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a simulation record and writes it keyed by record ID.
func (w *Writer) Publish(ctx context.Context, record domain.SimulationRecord) error {
	msg, err := serializeToMessage(record)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write simulation record: %w", err)
	}
	w.logger.Debug("simulation record published", "record_id", record.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SimulationRecord into a Kafka message.
func serializeToMessage(record domain.SimulationRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize simulation record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(record.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location", Value: []byte(record.Location)},
			{Key: "simulated_at", Value: []byte(record.SimulatedAt.Format(time.RFC3339))},
		},
	}, nil
}
