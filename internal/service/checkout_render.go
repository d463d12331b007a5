package service

import (
	"fmt"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/journey"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/shopspring/decimal"
)

func (s *CheckoutServiceImpl) render(run *checkoutRun) error {
	if err := run.advance(domain.CheckoutStatusRendered); err != nil {
		return err
	}

	doc, err := s.renderer.Render(confirmation(run.orderRef, run.request.Email, run.now, run.tickets, run.lines, run.total, run.degraded))
	if err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}
	run.document = doc
	return nil
}

func confirmation(orderRef, email string, at time.Time, tickets []domain.Command, lines []pricedLine, total decimal.Decimal, degraded bool) render.Confirmation {
	c := render.Confirmation{
		OrderReference: orderRef,
		Email:          email,
		PurchasedAt:    at,
		Tickets:        make([]render.Ticket, len(tickets)),
		Journeys:       journey.Pair(tickets),
		Total:          total,
		Degraded:       degraded,
	}
	for i, t := range tickets {
		line := render.Ticket{
			Number: i + 1,
			Seat:   t.Seat,
			Price:  lines[i].price,
		}
		if t.Trip == nil || !t.Validated {
			line.Unavailable = true
			c.Tickets[i] = line
			continue
		}
		line.Reference = t.Reference
		line.BoardingCode = t.BoardingCode
		line.TrainRef = t.Trip.TrainRef
		line.Departure = t.Trip.Departure
		line.Arrival = t.Trip.Arrival
		line.Date = t.Trip.Date
		line.Time = t.Trip.Time
		line.ArrivalTime = t.Trip.ArrivalTime()
		line.Duration = t.Trip.Duration()
		line.Options = lines[i].options
		c.Tickets[i] = line
	}
	return c
}
