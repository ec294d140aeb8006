// Package messaging publishes domain events to the message broker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/domain/order"
)

// EventOrderPlaced is the event_type header of order placed messages
const EventOrderPlaced = "order.placed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to a kafka topic
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher for the given brokers and topic
func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

// PublishOrderPlaced sends the event keyed by order number
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderPlaced)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher logs events instead of sending them. Used when no brokers
// are configured.
type LogPublisher struct {
	logger logrus.FieldLogger
}

// NewLogPublisher creates a publisher that only logs
func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// PublishOrderPlaced logs the event
func (p *LogPublisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	p.logger.WithFields(logrus.Fields{
		"event_type":   EventOrderPlaced,
		"order_number": event.OrderNumber,
		"total":        event.TotalAmount,
	}).Info("Order event (no broker configured)")
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error {
	return nil
}
