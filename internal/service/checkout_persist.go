package service

import (
	"context"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/reference"
	"github.com/google/uuid"
)

func (s *CheckoutServiceImpl) persist(ctx context.Context, run *checkoutRun) error {
	if err := run.advance(domain.CheckoutStatusPersisted); err != nil {
		return err
	}

	run.order = s.newOrder(run)
	if err := s.insertOrder(ctx, run.order); err != nil {
		s.degrade(ctx, run, &PersistenceError{Op: "insert order", Err: err})
		if !run.fallback {
			s.useFallbackReference(ctx, run)
			run.order = s.newOrder(run)
		}
		return nil
	}

	run.persisted = true
	s.log.InfoContext(ctx, "order persisted",
		"order_id", run.order.ID,
		"reference", run.orderRef,
		"fallback", reference.IsFallback(run.orderRef),
	)
	return nil
}

func (s *CheckoutServiceImpl) newOrder(run *checkoutRun) *domain.Order {
	return &domain.Order{
		ID:          uuid.NewString(),
		Email:       run.request.Email,
		Reference:   run.orderRef,
		PurchasedAt: run.now,
		Total:       run.total,
		Tickets:     run.tickets,
		Prices:      storedPrices(run.lines),
		Degraded:    run.degraded,
	}
}

func (s *CheckoutServiceImpl) insertOrder(ctx context.Context, order *domain.Order) error {
	insertCtx, cancel := context.WithTimeout(ctx, s.orders.timeout)
	defer cancel()
	return s.orders.repo.InsertOrder(insertCtx, order)
}

// publish announces a persisted order. A failure is logged and ignored.
func (s *CheckoutServiceImpl) publish(ctx context.Context, run *checkoutRun) {
	if s.events == nil || !run.persisted {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, s.events.timeout)
	defer cancel()
	if err := s.events.publisher.PublishOrderIssued(pubCtx, run.order); err != nil {
		s.log.WarnContext(ctx, "order event not published", "reference", run.orderRef, "error", err)
	}
}
