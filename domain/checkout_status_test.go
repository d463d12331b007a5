package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	order := []CheckoutStatus{
		CheckoutStatusCartPresent,
		CheckoutStatusPriced,
		CheckoutStatusReferenced,
		CheckoutStatusPersisted,
		CheckoutStatusRendered,
		CheckoutStatusDelivered,
		CheckoutStatusCartCleared,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.True(t, CanTransitionTo(order[i], order[i+1]), "%s -> %s", order[i], order[i+1])
		assert.True(t, CanTransitionTo(order[i], CheckoutStatusFailed), "%s -> FAILED", order[i])
		if i+2 < len(order) {
			assert.False(t, CanTransitionTo(order[i], order[i+2]), "%s skips a stage", order[i])
		}
		assert.False(t, CanTransitionTo(order[i+1], order[i]), "%s goes backwards", order[i+1])
	}
}

func TestCanTransitionTo_TerminalStates(t *testing.T) {
	assert.False(t, CanTransitionTo(CheckoutStatusCartCleared, CheckoutStatusFailed))
	assert.False(t, CanTransitionTo(CheckoutStatusFailed, CheckoutStatusPriced))
	assert.True(t, CheckoutStatusFailed.IsTerminal())
	assert.False(t, CheckoutStatusDelivered.IsTerminal())
}
