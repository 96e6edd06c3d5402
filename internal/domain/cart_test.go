package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAdd(t *testing.T) {
	cart := Cart{}
	require.NoError(t, cart.Add(CartLine{ItemID: 1, RestaurantID: 7, Quantity: 1}, false))
	require.NoError(t, cart.Add(CartLine{ItemID: 2, RestaurantID: 7, Quantity: 2}, false))
	assert.Len(t, cart.Lines, 2)
	assert.True(t, cart.SingleRestaurant(7))

	// позиция чужого ресторана без явной замены отклоняется
	err := cart.Add(CartLine{ItemID: 3, RestaurantID: 9, Quantity: 1}, false)
	require.ErrorIs(t, err, ErrCartRestaurantConflict)
	assert.Len(t, cart.Lines, 2)

	// с заменой корзина очищается и переключается на новый ресторан
	require.NoError(t, cart.Add(CartLine{ItemID: 3, RestaurantID: 9, Quantity: 1}, true))
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(9), cart.RestaurantID)
	assert.True(t, cart.SingleRestaurant(9))
}

func TestTooSoonToCancelErrorMessage(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "whole minutes", remaining: 15 * time.Minute, want: "too soon to cancel: 15 minutes remaining"},
		// неполная минута округляется вверх
		{name: "partial minute", remaining: 14*time.Minute + 30*time.Second, want: "too soon to cancel: 15 minutes remaining"},
		{name: "under a minute", remaining: 10 * time.Second, want: "too soon to cancel: 1 minutes remaining"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := &TooSoonToCancelError{Remaining: tc.remaining}
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.True(t, OrderStatusSuccess.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())

	assert.False(t, LoanStatusActive.Terminal())
	assert.True(t, LoanStatusPaid.Terminal())
	assert.True(t, LoanStatusCancelled.Terminal())
}
