package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderComputesTotal(t *testing.T) {
	o, err := NewOrder("user-1", []OrderItem{
		{ProductID: "p1", Quantity: 2, UnitPriceCents: 300},
		{ProductID: "p2", Quantity: 1, UnitPriceCents: 550},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, int64(1150), o.TotalCents)
	assert.Len(t, o.Items, 2)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestNewOrderRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		userID string
		items  []OrderItem
	}{
		{"no items", "user-1", nil},
		{"empty items", "user-1", []OrderItem{}},
		{"zero quantity", "user-1", []OrderItem{{ProductID: "p1", Quantity: 0, UnitPriceCents: 100}}},
		{"negative quantity", "user-1", []OrderItem{{ProductID: "p1", Quantity: -2, UnitPriceCents: 100}}},
		{"negative price", "user-1", []OrderItem{{ProductID: "p1", Quantity: 1, UnitPriceCents: -1}}},
		{"missing product", "user-1", []OrderItem{{Quantity: 1, UnitPriceCents: 100}}},
		{"missing user", "", []OrderItem{{ProductID: "p1", Quantity: 1, UnitPriceCents: 100}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.userID, tc.items)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

func TestNewOrderFreeItemIsValid(t *testing.T) {
	o, err := NewOrder("user-1", []OrderItem{{ProductID: "p1", Quantity: 3, UnitPriceCents: 0}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), o.TotalCents)
}
