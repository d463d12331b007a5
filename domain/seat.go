package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptySeat     = errors.New("seat is empty")
	ErrMalformedSeat = errors.New("seat is malformed")
)

// Seat is a car number plus a seat code. Car is 0 for legacy seats stored
// without a car prefix.
type Seat struct {
	Car  int
	Code string
}

// ParseSeat accepts "<car>-<code>" (e.g. "2-5A") or a bare legacy code ("12A").
func ParseSeat(s string) (Seat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Seat{}, ErrEmptySeat
	}

	car, code, found := strings.Cut(s, "-")
	if !found {
		return Seat{Code: s}, nil
	}

	n, err := strconv.Atoi(car)
	if err != nil || n <= 0 || code == "" {
		return Seat{}, fmt.Errorf("%w: %q", ErrMalformedSeat, s)
	}
	return Seat{Car: n, Code: code}, nil
}

func (s Seat) String() string {
	if s.Car == 0 {
		return s.Code
	}
	return fmt.Sprintf("%d-%s", s.Car, s.Code)
}
