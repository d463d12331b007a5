package service

import (
	"context"
	"strings"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/shopspring/decimal"
)

// checkoutRun carries one checkout attempt through its stages.
type checkoutRun struct {
	request *domain.CheckoutRequest
	status  domain.CheckoutStatus
	now     time.Time

	lines []pricedLine
	total decimal.Decimal

	orderRef string
	fallback bool
	tickets  []domain.Command // issued copies; unissuable items keep their cart form

	order     *domain.Order
	persisted bool
	degraded  bool
	reasons   []string

	document   render.Document
	deliveryID string
}

func (r *checkoutRun) advance(to domain.CheckoutStatus) error {
	if !domain.CanTransitionTo(r.status, to) {
		return IllegalTransitionError
	}
	r.status = to
	return nil
}

// Checkout issues every item of the request as one order. A validation error
// is returned before any collaborator is called. Persistence failures only
// degrade the outcome. A delivery failure returns the outcome together with a
// *DeliveryError; the persisted order is kept.
//
// Calling Checkout twice with the same items issues two orders.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, request *domain.CheckoutRequest) (*domain.CheckoutOutcome, error) {
	now := s.now()
	request = normalize(request)
	if err := s.validate(request, now); err != nil {
		return nil, err
	}

	run := &checkoutRun{
		request: request,
		status:  domain.CheckoutStatusCartPresent,
		now:     now,
	}

	if err := s.price(run); err != nil {
		return s.fail(run, err), err
	}
	if err := s.reference(ctx, run); err != nil {
		return s.fail(run, err), err
	}
	if err := s.persist(ctx, run); err != nil {
		return s.fail(run, err), err
	}
	s.publish(ctx, run)
	if err := s.render(run); err != nil {
		return s.fail(run, err), err
	}
	if err := s.deliver(ctx, run); err != nil {
		return s.fail(run, err), err
	}
	cleared, err := s.clearCart(ctx, run)
	if err != nil {
		return s.fail(run, err), err
	}

	outcome := s.outcome(run)
	outcome.CartCleared = cleared
	outcome.Status = domain.OutcomeSuccess
	if run.degraded {
		outcome.Status = domain.OutcomeDegraded
	}

	s.log.InfoContext(ctx, "checkout finished",
		"reference", run.orderRef,
		"status", outcome.Status,
		"tickets", len(run.tickets),
		"delivery_id", run.deliveryID,
	)
	return outcome, nil
}

// normalize returns a copy of request with surrounding blanks stripped from
// the emails; the order, the mail and the cart lookup all use the trimmed form.
func normalize(request *domain.CheckoutRequest) *domain.CheckoutRequest {
	if request == nil {
		return nil
	}
	out := *request
	out.Email = strings.TrimSpace(out.Email)
	out.UserEmail = strings.TrimSpace(out.UserEmail)
	return &out
}

func (s *CheckoutServiceImpl) fail(run *checkoutRun, err error) *domain.CheckoutOutcome {
	outcome := s.outcome(run)
	outcome.Status = domain.OutcomeFailed
	outcome.FailedStage = run.status
	outcome.Stage = domain.CheckoutStatusFailed
	run.reasons = append(run.reasons, err.Error())
	outcome.Reason = joinReasons(run.reasons)

	s.log.Error("checkout failed",
		"stage", run.status,
		"reference", run.orderRef,
		"persisted", run.persisted,
		"error", err,
	)
	return outcome
}

func (s *CheckoutServiceImpl) outcome(run *checkoutRun) *domain.CheckoutOutcome {
	outcome := &domain.CheckoutOutcome{
		Stage:             run.status,
		OrderReference:    run.orderRef,
		FallbackReference: run.fallback,
		DeliveryID:        run.deliveryID,
		Tickets:           issuedTickets(run),
		Total:             run.total,
		Degraded:          run.degraded,
		Reason:            joinReasons(run.reasons),
	}
	if run.persisted {
		outcome.OrderID = run.order.ID
	}
	return outcome
}

func issuedTickets(run *checkoutRun) []domain.IssuedTicket {
	out := make([]domain.IssuedTicket, 0, len(run.tickets))
	for i, t := range run.tickets {
		ticket := domain.IssuedTicket{
			Reference:    t.Reference,
			BoardingCode: t.BoardingCode,
			Seat:         t.Seat,
			Options:      domain.DistinctOptions(t.Options),
			Unavailable:  t.Trip == nil,
		}
		if i < len(run.lines) {
			ticket.Price = run.lines[i].price
		}
		if t.Trip != nil {
			ticket.TrainRef = t.Trip.TrainRef
			ticket.Departure = t.Trip.Departure
			ticket.Arrival = t.Trip.Arrival
			ticket.Date = t.Trip.Date
			ticket.Time = t.Trip.Time
		}
		out = append(out, ticket)
	}
	return out
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}
