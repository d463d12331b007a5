package domain

import "github.com/shopspring/decimal"

// Option is a paid extra attached to a cart item.
type Option string

const (
	OptionQuietSeat             Option = "PLA_TRA"
	OptionPowerOutlet           Option = "PRI_ELE"
	OptionExtraBaggage          Option = "BAG_SUP"
	OptionSMSNotification       Option = "INF_SMS"
	OptionCancellationGuarantee Option = "GAR_ANN"
)

type optionInfo struct {
	label string
	price decimal.Decimal
}

var optionCatalog = map[Option]optionInfo{
	OptionQuietSeat:             {"Quiet seat", decimal.RequireFromString("3")},
	OptionPowerOutlet:           {"Power outlet", decimal.RequireFromString("2")},
	OptionExtraBaggage:          {"Extra baggage", decimal.RequireFromString("5")},
	OptionSMSNotification:       {"SMS notification", decimal.RequireFromString("1")},
	OptionCancellationGuarantee: {"Cancellation guarantee", decimal.RequireFromString("2.9")},
}

// Options lists the catalog in display order.
func Options() []Option {
	return []Option{
		OptionQuietSeat,
		OptionPowerOutlet,
		OptionExtraBaggage,
		OptionSMSNotification,
		OptionCancellationGuarantee,
	}
}

// Price returns the option price. ok is false for codes outside the catalog.
func (o Option) Price() (price decimal.Decimal, ok bool) {
	info, ok := optionCatalog[o]
	if !ok {
		return decimal.Zero, false
	}
	return info.price, true
}

func (o Option) Known() bool {
	_, ok := optionCatalog[o]
	return ok
}

// Label is the human readable name; unknown codes render as themselves.
func (o Option) Label() string {
	if info, ok := optionCatalog[o]; ok {
		return info.label
	}
	return string(o)
}

// DistinctOptions drops repeated codes, keeping first occurrence order.
func DistinctOptions(options []Option) []Option {
	seen := make(map[Option]struct{}, len(options))
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
