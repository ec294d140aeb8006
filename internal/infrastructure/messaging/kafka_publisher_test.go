package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/domain/order"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func testEvent() order.PlacedEvent {
	return order.PlacedEvent{
		OrderNumber:  "GF-20241101-ABCDEF12",
		Email:        "asha@example.com",
		DeliveryTier: "standard",
		ItemCount:    3,
		TotalAmount:  1329,
		Currency:     "INR",
		PlacedAt:     time.Date(2024, 11, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_WritesKeyedMessage(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	require.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "GF-20241101-ABCDEF12", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventOrderPlaced, string(msg.Headers[0].Value))

	var decoded order.PlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, testEvent(), decoded)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	writer := &mockWriter{err: errors.New("leader not available")}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	err := publisher.PublishOrderPlaced(context.Background(), testEvent())
	assert.ErrorContains(t, err, "leader not available")

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestLogPublisher(t *testing.T) {
	publisher := NewLogPublisher(logger.Discard())

	assert.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))
	assert.NoError(t, publisher.Close())
}
