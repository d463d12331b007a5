package domain

type CheckoutStatus string

const (
	CheckoutStatusCartPresent CheckoutStatus = "CART_PRESENT"
	CheckoutStatusPriced      CheckoutStatus = "PRICED"
	CheckoutStatusReferenced  CheckoutStatus = "REFERENCED"
	CheckoutStatusPersisted   CheckoutStatus = "PERSISTED"
	CheckoutStatusRendered    CheckoutStatus = "RENDERED"
	CheckoutStatusDelivered   CheckoutStatus = "DELIVERED"
	CheckoutStatusCartCleared CheckoutStatus = "CART_CLEARED"
	CheckoutStatusFailed      CheckoutStatus = "FAILED"
)

var checkoutTransitions = map[CheckoutStatus]CheckoutStatus{
	CheckoutStatusCartPresent: CheckoutStatusPriced,
	CheckoutStatusPriced:      CheckoutStatusReferenced,
	CheckoutStatusReferenced:  CheckoutStatusPersisted,
	CheckoutStatusPersisted:   CheckoutStatusRendered,
	CheckoutStatusRendered:    CheckoutStatusDelivered,
	CheckoutStatusDelivered:   CheckoutStatusCartCleared,
}

// CanTransitionTo allows the next stage in order, or FAILED from any
// non-terminal stage.
func CanTransitionTo(from, to CheckoutStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == CheckoutStatusFailed {
		return true
	}
	return checkoutTransitions[from] == to
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCartCleared || s == CheckoutStatusFailed
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
