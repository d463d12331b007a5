package service

import (
	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/pricing"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/shopspring/decimal"
)

// pricedLine is the price breakdown of one item, computed once and handed to
// the renderer as is.
type pricedLine struct {
	price   decimal.Decimal
	options []render.OptionLine
}

func (s *CheckoutServiceImpl) price(run *checkoutRun) error {
	if err := run.advance(domain.CheckoutStatusPriced); err != nil {
		return err
	}
	run.lines, run.total = priceItems(run.request.Items)
	return nil
}

func priceItems(items []domain.Command) ([]pricedLine, decimal.Decimal) {
	lines := make([]pricedLine, len(items))
	for i, item := range items {
		distinct := domain.DistinctOptions(item.Options)
		options := make([]render.OptionLine, 0, len(distinct))
		for _, o := range distinct {
			p, _ := o.Price()
			options = append(options, render.OptionLine{Code: o, Label: o.Label(), Price: p})
		}
		lines[i] = pricedLine{price: pricing.CommandPrice(item), options: options}
	}
	return lines, pricing.CartTotal(items)
}

func storedPrices(lines []pricedLine) []domain.TicketPrice {
	out := make([]domain.TicketPrice, len(lines))
	for i, l := range lines {
		options := make([]domain.PricedOption, len(l.options))
		for j, o := range l.options {
			options[j] = domain.PricedOption{Code: o.Code, Price: o.Price}
		}
		out[i] = domain.TicketPrice{Price: l.price, Options: options}
	}
	return out
}

// orderLines returns the prices frozen on the order. Orders stored without
// them are priced again from the current catalog.
func orderLines(order *domain.Order) []pricedLine {
	if len(order.Prices) != len(order.Tickets) {
		lines, _ := priceItems(order.Tickets)
		return lines
	}
	lines := make([]pricedLine, len(order.Prices))
	for i, p := range order.Prices {
		options := make([]render.OptionLine, len(p.Options))
		for j, o := range p.Options {
			options[j] = render.OptionLine{Code: o.Code, Label: o.Code.Label(), Price: o.Price}
		}
		lines[i] = pricedLine{price: p.Price, options: options}
	}
	return lines
}
