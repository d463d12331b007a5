package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/swiftrail/domain"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository stores orders. Orders are insert-only.
type OrderRepository interface {
	InsertOrder(ctx context.Context, order *domain.Order) error
	CountOrders(ctx context.Context) (int64, error)
	FindOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)
	FindOrderByReference(ctx context.Context, reference string) (*domain.Order, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateCart(ctx context.Context, email string, cart domain.Cart) error
	// IssueCommands replaces the cart and appends issued commands to the
	// user's history in one update.
	IssueCommands(ctx context.Context, email string, cart domain.Cart, issued []domain.Command) error
}

type TripRepository interface {
	// FindTrips returns trips for a route and date, cheapest first.
	FindTrips(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error)
	CountTrips(ctx context.Context, departure, arrival, date string) (int64, error)
	InsertTrips(ctx context.Context, trips []domain.Trip) error
}

// OutboxEvent is an event that could not be published when it happened and
// waits for the outbox poller.
type OutboxEvent struct {
	ID          string     `bson:"_id"`
	AggregateID string     `bson:"aggregate_id"`
	EventType   string     `bson:"event_type"`
	Payload     []byte     `bson:"payload"`
	CreatedAt   time.Time  `bson:"created_at"`
	Processed   bool       `bson:"processed"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty"`
}

type OutboxRepository interface {
	InsertEvent(ctx context.Context, event *OutboxEvent) error
	// GetUnprocessedEvents returns up to limit events, oldest first.
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id string) error
}
