package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fjod/swiftrail/domain"
)

type OrderService struct {
	orders   *OrderHandler
	mail     *MailHandler
	renderer Renderer
	log      *slog.Logger
}

func NewOrderService(orders *OrderHandler, mail *MailHandler, renderer Renderer, log *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		mail:     mail,
		renderer: renderer,
		log:      log.With("component", "orders"),
	}
}

// OrderHistory lists the orders of an email, newest first.
func (s *OrderService) OrderHistory(ctx context.Context, email string) ([]domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newValidationError(ErrInvalidEmail, domain.FieldError{Field: "email", Message: "email is required"})
	}
	findCtx, cancel := context.WithTimeout(ctx, s.orders.timeout)
	defer cancel()
	return s.orders.repo.FindOrdersByEmail(findCtx, email)
}

// ResendConfirmation renders a stored order again and sends it once. It is
// how a caller retries after a delivery failure without issuing a new order.
func (s *OrderService) ResendConfirmation(ctx context.Context, orderRef string) (string, error) {
	findCtx, cancel := context.WithTimeout(ctx, s.orders.timeout)
	defer cancel()
	order, err := s.orders.repo.FindOrderByReference(findCtx, orderRef)
	if err != nil {
		return "", err
	}

	doc, err := s.renderer.Render(confirmation(order.Reference, order.Email, order.PurchasedAt, order.Tickets, orderLines(order), order.Total, order.Degraded))
	if err != nil {
		return "", err
	}

	id, err := send(ctx, s.mail, order.Email, doc)
	if err != nil {
		return "", &DeliveryError{OrderReference: order.Reference, Err: err}
	}
	s.log.InfoContext(ctx, "confirmation resent", "reference", order.Reference, "delivery_id", id)
	return id, nil
}
