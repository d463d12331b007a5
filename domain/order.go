package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the append-only record of one checkout.
type Order struct {
	ID          string          `bson:"_id" json:"id"`
	Email       string          `bson:"email" json:"email"`
	Reference   string          `bson:"reference" json:"reference"`
	PurchasedAt time.Time       `bson:"purchased_at" json:"purchased_at"`
	Total       decimal.Decimal `bson:"total" json:"total"`
	Tickets     []Command       `bson:"tickets" json:"tickets"`
	// Prices holds what each ticket cost at purchase, index for index.
	Prices   []TicketPrice `bson:"prices,omitempty" json:"prices,omitempty"`
	Degraded bool          `bson:"degraded" json:"degraded"`
}

type TicketPrice struct {
	Price   decimal.Decimal `bson:"price" json:"price"`
	Options []PricedOption  `bson:"options" json:"options"`
}

type PricedOption struct {
	Code  Option          `bson:"code" json:"code"`
	Price decimal.Decimal `bson:"price" json:"price"`
}

// Issued returns the tickets that carry a reference.
func (o *Order) Issued() []Command {
	out := make([]Command, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		if t.Validated {
			out = append(out, t)
		}
	}
	return out
}
