package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order is a placed order. TotalCents is derived once at creation from the
// line items and never recomputed; orders and their items are immutable after
// placement.
type Order struct {
	ID         string
	UserID     string
	Items      []OrderItem
	TotalCents int64
	CreatedAt  time.Time
}

// OrderItem is one product/quantity/price line within an order. Prices are
// integer minor units (cents); items are owned exclusively by their order.
type OrderItem struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

var (
	// ErrInvalidOrder means the order input failed validation. Nothing was
	// persisted.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrPlacementRolledBack means a partial write was detected and undone;
	// no order state remains visible.
	ErrPlacementRolledBack = errors.New("order placement rolled back")
)

// NewOrder validates the line items and builds an order with a fresh id and
// the total summed in cents.
func NewOrder(userID string, items []OrderItem) (Order, error) {
	if userID == "" {
		return Order{}, fmt.Errorf("%w: missing user id", ErrInvalidOrder)
	}
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: order has no items", ErrInvalidOrder)
	}

	var total int64
	for i, item := range items {
		if item.ProductID == "" {
			return Order{}, fmt.Errorf("%w: item %d has no product id", ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: item %d has non-positive quantity", ErrInvalidOrder, i)
		}
		if item.UnitPriceCents < 0 {
			return Order{}, fmt.Errorf("%w: item %d has negative unit price", ErrInvalidOrder, i)
		}
		total += int64(item.Quantity) * item.UnitPriceCents
	}

	return Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		Items:      items,
		TotalCents: total,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
