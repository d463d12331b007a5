package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/repository"
	"github.com/fjod/swiftrail/pkg/logger"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

type MockWriter struct {
	Messages []kafkaGo.Message
	Err      error
	// FailAfter makes writes fail once this many messages were written.
	FailAfter int
	Closed    bool
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	if m.Err != nil && len(m.Messages) >= m.FailAfter {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

// MockOutbox implements repository.OutboxRepository for testing
type MockOutbox struct {
	Events    []*repository.OutboxEvent
	Processed []string
	InsertErr error
	GetErr    error
	MarkErr   error
}

func (m *MockOutbox) InsertEvent(_ context.Context, event *repository.OutboxEvent) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutbox) GetUnprocessedEvents(_ context.Context, limit int) ([]*repository.OutboxEvent, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	out := []*repository.OutboxEvent{}
	for _, e := range m.Events {
		if !e.Processed && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockOutbox) MarkEventAsProcessed(_ context.Context, id string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	for _, e := range m.Events {
		if e.ID == id {
			e.Processed = true
		}
	}
	m.Processed = append(m.Processed, id)
	return nil
}

func (m *MockWriter) Close() error {
	m.Closed = true
	return nil
}

func testOrder() *domain.Order {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:          "order-1",
		Email:       "ana@example.com",
		Reference:   "SR-42-ABCD",
		PurchasedAt: now,
		Total:       decimal.RequireFromString("12.905"),
		Tickets: []domain.Command{
			{Seat: "2-5A", Reference: "SR-42-ABCD-001", Validated: true, ValidationDate: &now},
			{Seat: "3-1B"},
		},
	}
}

func TestPublishOrderIssued(t *testing.T) {
	w := &MockWriter{}
	p := NewOrderPublisher(w, nil, logger.Discard())

	require.NoError(t, p.PublishOrderIssued(context.Background(), testOrder()))

	require.Len(t, w.Messages, 1)
	msg := w.Messages[0]
	assert.Equal(t, "SR-42-ABCD", string(msg.Key))
	require.NotEmpty(t, msg.Headers)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventTypeOrderIssued, string(msg.Headers[0].Value))

	var event OrderIssuedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, "12.91", event.Total)
	assert.Equal(t, []string{"SR-42-ABCD-001"}, event.Tickets)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, string(msg.Headers[1].Value), event.EventID)
}

func TestPublishOrderIssued_WriterError(t *testing.T) {
	w := &MockWriter{Err: errors.New("leader not available")}
	p := NewOrderPublisher(w, nil, logger.Discard())

	err := p.PublishOrderIssued(context.Background(), testOrder())

	assert.ErrorIs(t, err, w.Err)
}

func TestPublishOrderIssued_QueuesInOutbox(t *testing.T) {
	w := &MockWriter{Err: errors.New("leader not available")}
	outbox := &MockOutbox{}
	p := NewOrderPublisher(w, outbox, logger.Discard())

	require.NoError(t, p.PublishOrderIssued(context.Background(), testOrder()))

	require.Len(t, outbox.Events, 1)
	event := outbox.Events[0]
	assert.Equal(t, "SR-42-ABCD", event.AggregateID)
	assert.Equal(t, EventTypeOrderIssued, event.EventType)
	var payload OrderIssuedEvent
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, event.ID, payload.EventID)
}

func TestPublishOrderIssued_OutboxAlsoFails(t *testing.T) {
	w := &MockWriter{Err: errors.New("leader not available")}
	outbox := &MockOutbox{InsertErr: errors.New("mongo down")}
	p := NewOrderPublisher(w, outbox, logger.Discard())

	err := p.PublishOrderIssued(context.Background(), testOrder())

	assert.ErrorIs(t, err, w.Err)
	assert.ErrorIs(t, err, outbox.InsertErr)
}

func TestClose(t *testing.T) {
	w := &MockWriter{}
	require.NoError(t, NewOrderPublisher(w, nil, logger.Discard()).Close())
	assert.True(t, w.Closed)
}

func setupKafka(t *testing.T) (string, func()) {
	if testing.Short() {
		t.Skip("skipping Kafka integration test in short mode")
	}
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestOrderPublisher_WritesToKafka(t *testing.T) {
	brokerAddr, cleanup := setupKafka(t)
	defer cleanup()

	createTopic(t, brokerAddr, DefaultTopic)
	time.Sleep(5 * time.Second)

	p := NewOrderPublisher(NewWriter(DefaultTopic, brokerAddr), nil, logger.Discard())
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, p.PublishOrderIssued(ctx, testOrder()))

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:  []string{brokerAddr},
		Topic:    DefaultTopic,
		GroupID:  "test-consumer",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "SR-42-ABCD", string(msg.Key))
	var event OrderIssuedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "ana@example.com", event.Email)
}
