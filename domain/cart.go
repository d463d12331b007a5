package domain

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("cart item index out of range")

// Cart is an ordered list of pending commands. Every method returns a new
// Cart and leaves the receiver untouched.
type Cart []Command

func (c Cart) Len() int { return len(c) }

func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	for i, cmd := range c {
		out[i] = cmd.clone()
	}
	return out
}

// Add appends a copy of cmd with duplicate options removed.
func (c Cart) Add(cmd Command) Cart {
	item := cmd.clone()
	item.Options = DistinctOptions(item.Options)
	item.Validated = false
	item.ValidationDate = nil
	return append(c.Clone(), item)
}

func (c Cart) RemoveAt(i int) (Cart, error) {
	if err := c.check(i); err != nil {
		return c, err
	}
	out := c.Clone()
	return append(out[:i], out[i+1:]...), nil
}

func (c Cart) SetSeat(i int, seat Seat) (Cart, error) {
	if err := c.check(i); err != nil {
		return c, err
	}
	out := c.Clone()
	out[i].Seat = seat.String()
	return out, nil
}

func (c Cart) RemoveOption(i int, option Option) (Cart, error) {
	if err := c.check(i); err != nil {
		return c, err
	}
	out := c.Clone()
	kept := out[i].Options[:0]
	for _, o := range out[i].Options {
		if o != option {
			kept = append(kept, o)
		}
	}
	out[i].Options = kept
	return out, nil
}

// Without removes one matching cart item per issued command.
func (c Cart) Without(issued []Command) Cart {
	pending := make(map[string]int, len(issued))
	for _, cmd := range issued {
		pending[cmd.Key()]++
	}

	out := make(Cart, 0, len(c))
	for _, cmd := range c {
		k := cmd.Key()
		if pending[k] > 0 {
			pending[k]--
			continue
		}
		out = append(out, cmd.clone())
	}
	return out
}

func (c Cart) check(i int) error {
	if i < 0 || i >= len(c) {
		return fmt.Errorf("%w: %d (cart has %d items)", ErrIndexOutOfRange, i, len(c))
	}
	return nil
}
