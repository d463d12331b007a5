// Package pricing computes ticket and cart prices. Amounts are never rounded
// while summing; Format is the only place that fixes two decimals.
package pricing

import (
	"github.com/fjod/swiftrail/domain"
	"github.com/shopspring/decimal"
)

// OptionsPrice sums distinct option prices. Unknown codes count as zero so
// carts stored with legacy encodings still price.
func OptionsPrice(options []domain.Option) decimal.Decimal {
	total := decimal.Zero
	for _, o := range domain.DistinctOptions(options) {
		price, _ := o.Price()
		total = total.Add(price)
	}
	return total
}

func ItemPrice(trip domain.Trip, options []domain.Option) decimal.Decimal {
	return trip.Price.Add(OptionsPrice(options))
}

// CommandPrice prices a cart item; a missing trip contributes no base fare.
func CommandPrice(c domain.Command) decimal.Decimal {
	if c.Trip == nil {
		return OptionsPrice(c.Options)
	}
	return ItemPrice(*c.Trip, c.Options)
}

func CartTotal(items []domain.Command) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(CommandPrice(item))
	}
	return total
}

// Format renders an amount with two decimals for display.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
