// Package journey groups cart items into outbound/return pairs for display.
// The grouping never feeds back into prices or stored records.
package journey

import "github.com/fjod/swiftrail/domain"

const NoReturn = -1

// Journey references items by their index in the input list.
type Journey struct {
	Outbound int
	Return   int
}

func (j Journey) RoundTrip() bool { return j.Return != NoReturn }

// Pair scans left to right. Each unpaired item takes the first later unpaired
// item whose departure equals its arrival and whose arrival equals its
// departure. City names are compared verbatim.
func Pair(items []domain.Command) []Journey {
	used := make([]bool, len(items))
	journeys := make([]Journey, 0, len(items))

	for i := range items {
		if used[i] {
			continue
		}
		used[i] = true
		j := Journey{Outbound: i, Return: NoReturn}

		if out := items[i].Trip; out != nil {
			for k := i + 1; k < len(items); k++ {
				back := items[k].Trip
				if used[k] || back == nil {
					continue
				}
				if back.Departure == out.Arrival && back.Arrival == out.Departure {
					used[k] = true
					j.Return = k
					break
				}
			}
		}
		journeys = append(journeys, j)
	}
	return journeys
}

// Split returns the outbound (or one-way) indices and the return indices.
func Split(journeys []Journey) (outbound, returns []int) {
	outbound = make([]int, 0, len(journeys))
	returns = make([]int, 0, len(journeys))
	for _, j := range journeys {
		outbound = append(outbound, j.Outbound)
		if j.RoundTrip() {
			returns = append(returns, j.Return)
		}
	}
	return outbound, returns
}
