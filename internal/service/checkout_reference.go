package service

import (
	"context"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/reference"
)

func (s *CheckoutServiceImpl) reference(ctx context.Context, run *checkoutRun) error {
	if err := run.advance(domain.CheckoutStatusReferenced); err != nil {
		return err
	}

	countCtx, cancel := context.WithTimeout(ctx, s.orders.timeout)
	defer cancel()
	count, err := s.orders.repo.CountOrders(countCtx)
	if err != nil {
		s.degrade(ctx, run, &PersistenceError{Op: "count orders", Err: err})
		s.useFallbackReference(ctx, run)
		return nil
	}

	run.orderRef = s.refs.OrderReference(count)
	run.tickets = s.issueTickets(ctx, run.orderRef, run.request.Items, run.now)
	return nil
}

func (s *CheckoutServiceImpl) useFallbackReference(ctx context.Context, run *checkoutRun) {
	run.orderRef = s.refs.FallbackOrderReference(run.now)
	run.fallback = true
	run.tickets = s.issueTickets(ctx, run.orderRef, run.request.Items, run.now)
	s.log.WarnContext(ctx, "using fallback order reference", "reference", run.orderRef)
}

// issueTickets references every item by its 1-based position. An item without
// a trip keeps its position but gets no reference.
func (s *CheckoutServiceImpl) issueTickets(ctx context.Context, orderRef string, items []domain.Command, now time.Time) []domain.Command {
	tickets := make([]domain.Command, len(items))
	for i, item := range items {
		if item.Trip == nil {
			dataErr := &DataError{Index: i, Reason: "missing trip details"}
			s.log.ErrorContext(ctx, "cannot issue ticket", "reference", orderRef, "error", dataErr)
			tickets[i] = item
			continue
		}
		ticketRef := reference.TicketReference(orderRef, i+1)
		tickets[i] = item.Issue(ticketRef, s.refs.BoardingCode(ticketRef, *item.Trip), now)
	}
	return tickets
}

func (s *CheckoutServiceImpl) degrade(ctx context.Context, run *checkoutRun, err error) {
	run.degraded = true
	run.reasons = append(run.reasons, err.Error())
	s.log.WarnContext(ctx, "checkout degraded", "error", err)
}
