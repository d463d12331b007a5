package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Trip is a scheduled train journey. Carts embed a copy of it, so later
// changes to the stored trip never reach an existing cart item.
type Trip struct {
	TrainRef  string          `bson:"train_ref" json:"train_ref"`
	Departure string          `bson:"departure" json:"departure"`
	Arrival   string          `bson:"arrival" json:"arrival"`
	Date      string          `bson:"date" json:"date"`
	Time      string          `bson:"time" json:"time"`
	Length    int             `bson:"length" json:"length"` // minutes
	Price     decimal.Decimal `bson:"price" json:"price"`
}

// SameRoute reports whether both trips share departure, arrival and date.
func (t Trip) SameRoute(o Trip) bool {
	return t.Departure == o.Departure && t.Arrival == o.Arrival && t.Date == o.Date
}

// ArrivalTime returns the wall-clock arrival as HH:MM, wrapping past midnight.
// An unparsable departure time yields an empty string.
func (t Trip) ArrivalTime() string {
	dep, err := time.Parse(TimeLayout, t.Time)
	if err != nil {
		return ""
	}
	total := dep.Hour()*60 + dep.Minute() + t.Length
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

// Duration formats the trip length the way tickets print it, e.g. 4h30.
func (t Trip) Duration() string {
	return fmt.Sprintf("%dh%02d", t.Length/60, t.Length%60)
}
