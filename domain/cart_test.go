package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(dep, arr, seat string, options ...Option) Command {
	return Command{
		Trip: &Trip{
			TrainRef:  "TGV123",
			Departure: dep,
			Arrival:   arr,
			Date:      "2025-04-10",
			Time:      "08:30",
			Length:    120,
			Price:     decimal.NewFromInt(45),
		},
		Options: options,
		Seat:    seat,
	}
}

func TestCart_AddDoesNotMutateReceiver(t *testing.T) {
	base := Cart{}.Add(item("Paris", "Lyon", "2-5A"))

	next := base.Add(item("Lyon", "Paris", "2-6A", OptionQuietSeat, OptionQuietSeat))

	assert.Len(t, base, 1)
	require.Len(t, next, 2)
	assert.Equal(t, []Option{OptionQuietSeat}, next[1].Options)

	next[0].Trip.Departure = "Nice"
	assert.Equal(t, "Paris", base[0].Trip.Departure, "items are deep copies")
}

func TestCart_AddResetsIssuance(t *testing.T) {
	issued := item("Paris", "Lyon", "2-5A").Issue("SR-1-ABCD-001", "code", time.Now())

	cart := Cart{}.Add(issued)

	assert.False(t, cart[0].Validated)
	assert.Nil(t, cart[0].ValidationDate)
}

func TestCart_RemoveAt(t *testing.T) {
	cart := Cart{}.Add(item("Paris", "Lyon", "1-1A")).Add(item("Lyon", "Paris", "1-1B"))

	out, err := cart.RemoveAt(0)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "1-1B", out[0].Seat)
	assert.Len(t, cart, 2)

	_, err = cart.RemoveAt(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = cart.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCart_SetSeat(t *testing.T) {
	cart := Cart{}.Add(item("Paris", "Lyon", ""))

	out, err := cart.SetSeat(0, Seat{Car: 3, Code: "14C"})

	require.NoError(t, err)
	assert.Equal(t, "3-14C", out[0].Seat)
	assert.Empty(t, cart[0].Seat)
}

func TestCart_RemoveOption(t *testing.T) {
	cart := Cart{}.Add(item("Paris", "Lyon", "1-1A", OptionQuietSeat, OptionExtraBaggage))

	out, err := cart.RemoveOption(0, OptionQuietSeat)

	require.NoError(t, err)
	assert.Equal(t, []Option{OptionExtraBaggage}, out[0].Options)
	assert.Equal(t, []Option{OptionQuietSeat, OptionExtraBaggage}, cart[0].Options)

	out, err = out.RemoveOption(0, OptionSMSNotification)
	require.NoError(t, err)
	assert.Equal(t, []Option{OptionExtraBaggage}, out[0].Options)
}

func TestCart_WithoutRemovesOneMatchPerIssued(t *testing.T) {
	a := item("Paris", "Lyon", "1-1A")
	b := item("Lyon", "Paris", "1-1A")
	cart := Cart{}.Add(a).Add(a).Add(b)

	issued := []Command{a.Issue("SR-1-ABCD-001", "code", time.Now())}
	out := cart.Without(issued)

	require.Len(t, out, 2)
	assert.Equal(t, a.Key(), out[0].Key())
	assert.Equal(t, b.Key(), out[1].Key())
}

func TestCart_CloneNil(t *testing.T) {
	var c Cart
	assert.Nil(t, c.Clone())
	assert.Zero(t, c.Len())
}
