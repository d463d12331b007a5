package domain

import (
	"strings"
	"time"
)

// Command is one booking unit: a trip snapshot, its options and a seat.
// It sits in a user's cart until checkout issues it.
type Command struct {
	Trip           *Trip      `bson:"travel_info" json:"travel_info"`
	Options        []Option   `bson:"options" json:"options"`
	Seat           string     `bson:"seat" json:"seat"`
	Reference      string     `bson:"reference,omitempty" json:"reference,omitempty"`
	BoardingCode   string     `bson:"boarding_code,omitempty" json:"boarding_code,omitempty"`
	Validated      bool       `bson:"validated" json:"validated"`
	ValidationDate *time.Time `bson:"validation_date" json:"validation_date"`
}

// Issue returns a validated copy carrying the given references.
func (c Command) Issue(reference, boardingCode string, at time.Time) Command {
	issued := c.clone()
	issued.Reference = reference
	issued.BoardingCode = boardingCode
	issued.Validated = true
	issued.ValidationDate = &at
	return issued
}

// Consistent checks that a validated command has a date and a reference.
func (c Command) Consistent() bool {
	if !c.Validated {
		return true
	}
	return c.ValidationDate != nil && c.Reference != ""
}

// Key identifies the booking independently of its issuance state, so an
// issued ticket can be matched back to the cart item it came from.
func (c Command) Key() string {
	if c.Trip == nil {
		return "|" + c.Seat
	}
	return strings.Join([]string{
		c.Trip.TrainRef, c.Trip.Departure, c.Trip.Arrival, c.Trip.Date, c.Trip.Time, c.Seat,
	}, "|")
}

func (c Command) clone() Command {
	out := c
	if c.Trip != nil {
		trip := *c.Trip
		out.Trip = &trip
	}
	if c.Options != nil {
		out.Options = append([]Option(nil), c.Options...)
	}
	if c.ValidationDate != nil {
		at := *c.ValidationDate
		out.ValidationDate = &at
	}
	return out
}
