package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/reference"
	"github.com/fjod/swiftrail/internal/render"
)

type CheckoutService interface {
	Checkout(ctx context.Context, request *domain.CheckoutRequest) (*domain.CheckoutOutcome, error)
}

type EventPublisher interface {
	PublishOrderIssued(ctx context.Context, order *domain.Order) error
}

type Renderer interface {
	Render(c render.Confirmation) (render.Document, error)
}

type CheckoutServiceImpl struct {
	orders   *OrderHandler
	users    *UserHandler
	mail     *MailHandler
	events   *EventHandler // nil disables order events
	renderer Renderer
	refs     *reference.Generator
	log      *slog.Logger
	now      func() time.Time
}

func NewCheckoutService(
	orders *OrderHandler,
	users *UserHandler,
	mail *MailHandler,
	events *EventHandler,
	renderer Renderer,
	refs *reference.Generator,
	log *slog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		orders:   orders,
		users:    users,
		mail:     mail,
		events:   events,
		renderer: renderer,
		refs:     refs,
		log:      log.With("component", "checkout"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}
