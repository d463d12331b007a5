package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/repository"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic         = "swiftrail-orders"
	EventTypeOrderIssued = "order.issued"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderIssuedEvent struct {
	EventID     string    `json:"event_id"`
	OrderID     string    `json:"order_id"`
	Reference   string    `json:"reference"`
	Email       string    `json:"email"`
	PurchasedAt time.Time `json:"purchased_at"`
	Total       string    `json:"total"`
	Tickets     []string  `json:"tickets"`
	Degraded    bool      `json:"degraded"`
}

type OrderPublisher struct {
	writer MessageWriter
	outbox repository.OutboxRepository // nil: failed events are dropped
	log    *slog.Logger
}

// NewWriter builds the Kafka writer shared by the publisher and the outbox
// poller.
func NewWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewOrderPublisher(w MessageWriter, outbox repository.OutboxRepository, log *slog.Logger) *OrderPublisher {
	return &OrderPublisher{
		writer: w,
		outbox: outbox,
		log:    log.With("component", "publisher"),
	}
}

// PublishOrderIssued writes one event keyed by the order reference so every
// event for an order lands on the same partition. When the write fails and an
// outbox is configured, the event is stored for the outbox poller and no
// error is returned.
func (p *OrderPublisher) PublishOrderIssued(ctx context.Context, order *domain.Order) error {
	event := OrderIssuedEvent{
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		Reference:   order.Reference,
		Email:       order.Email,
		PurchasedAt: order.PurchasedAt,
		Total:       order.Total.StringFixed(2),
		Tickets:     make([]string, 0, len(order.Tickets)),
		Degraded:    order.Degraded,
	}
	for _, t := range order.Tickets {
		if t.Reference != "" {
			event.Tickets = append(event.Tickets, t.Reference)
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	outboxEvent := &repository.OutboxEvent{
		ID:          event.EventID,
		AggregateID: order.Reference,
		EventType:   EventTypeOrderIssued,
		Payload:     payload,
	}
	writeErr := p.writer.WriteMessages(ctx, message(outboxEvent))
	if writeErr == nil {
		return nil
	}
	writeErr = fmt.Errorf("failed to publish order event: %w", writeErr)
	if p.outbox == nil {
		return writeErr
	}

	// The request context may be the one that just expired.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.outbox.InsertEvent(storeCtx, outboxEvent); err != nil {
		return errors.Join(writeErr, err)
	}
	p.log.WarnContext(ctx, "order event queued in outbox",
		"reference", order.Reference,
		"event_id", event.EventID,
		"error", writeErr,
	)
	return nil
}

func message(event *repository.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(event.AggregateID), // order reference for ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}
}

func (p *OrderPublisher) Close() error {
	return p.writer.Close()
}
