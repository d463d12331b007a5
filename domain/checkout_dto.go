package domain

import "github.com/shopspring/decimal"

type CheckoutRequest struct {
	// Email receives the confirmation and the order.
	Email   string       `json:"email"`
	Items   []Command    `json:"items"`
	Payment *PaymentForm `json:"payment,omitempty"`
	// UserEmail owns the cart the items come from. Set from the authenticated
	// identity, never from the body; empty means Email owns them.
	UserEmail string `json:"-"`
}

// Owner returns the user whose cart and history the checkout updates.
func (r *CheckoutRequest) Owner() string {
	if r.UserEmail != "" {
		return r.UserEmail
	}
	return r.Email
}

type OutcomeStatus string

const (
	OutcomeSuccess  OutcomeStatus = "success"
	OutcomeDegraded OutcomeStatus = "degraded"
	OutcomeFailed   OutcomeStatus = "failed"
)

type IssuedTicket struct {
	Reference    string          `json:"reference,omitempty"`
	BoardingCode string          `json:"boarding_code,omitempty"`
	TrainRef     string          `json:"train_ref,omitempty"`
	Departure    string          `json:"departure,omitempty"`
	Arrival      string          `json:"arrival,omitempty"`
	Date         string          `json:"date,omitempty"`
	Time         string          `json:"time,omitempty"`
	Seat         string          `json:"seat"`
	Options      []Option        `json:"options"`
	Price        decimal.Decimal `json:"price"`
	Unavailable  bool            `json:"unavailable,omitempty"`
}

// CheckoutOutcome is what a checkout call reports back. Persistence failures
// only degrade it; a delivery failure marks it failed.
type CheckoutOutcome struct {
	Status            OutcomeStatus   `json:"status"`
	Stage             CheckoutStatus  `json:"stage"`
	FailedStage       CheckoutStatus  `json:"failed_stage,omitempty"`
	OrderID           string          `json:"order_id,omitempty"`
	OrderReference    string          `json:"order_reference"`
	FallbackReference bool            `json:"fallback_reference"`
	DeliveryID        string          `json:"delivery_id,omitempty"`
	Tickets           []IssuedTicket  `json:"tickets"`
	Total             decimal.Decimal `json:"total"`
	Degraded          bool            `json:"degraded"`
	CartCleared       bool            `json:"cart_cleared"`
	Reason            string          `json:"reason,omitempty"`
}

type GenerateTripsRequest struct {
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	RoundTrip     bool   `json:"round_trip"`
}

type GenerateTripsResult struct {
	Outbound []Trip `json:"outbound"`
	Return   []Trip `json:"return,omitempty"`
}

type CartLine struct {
	Index   int             `json:"index"`
	Command Command         `json:"command"`
	Price   decimal.Decimal `json:"price"`
}

type JourneyView struct {
	Outbound int `json:"outbound"`
	Return   int `json:"return"` // -1 when one-way
}

type CartSummary struct {
	Lines    []CartLine      `json:"lines"`
	Journeys []JourneyView   `json:"journeys"`
	Total    decimal.Decimal `json:"total"`
}
