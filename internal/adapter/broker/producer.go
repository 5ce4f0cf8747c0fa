package broker

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// Publisher ships outbox events to downstream consumers. The key is the
// recipient user id so a partition preserves per-user ordering.
type Publisher interface {
	Publish(ctx context.Context, key int64, value []byte) error
	Close() error
}

// Producer implements Publisher on top of a Kafka writer.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer builds a Kafka publisher for the given brokers and topic.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer, logger: logger}
}

// Publish writes a single message keyed by recipient id.
func (p *Producer) Publish(ctx context.Context, key int64, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish broker message", slog.Int64("key", key), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("failed to close broker writer", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NoopPublisher is used when no brokers are configured: events still reach
// the realtime hub and the notifications table, they just skip the bus.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, int64, []byte) error { return nil }
func (NoopPublisher) Close() error                                 { return nil }
