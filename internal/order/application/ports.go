package application

import (
	"context"

	"github.com/shopworks/commerce-backend/internal/order/domain"
)

// OrderStore is the minimal persistence contract every backend provides.
// Backends without multi-record transactions expose only these sequential
// operations; the coordinator compensates on partial failure.
type OrderStore interface {
	InsertOrder(ctx context.Context, o domain.Order) error
	InsertItems(ctx context.Context, orderID string, items []domain.OrderItem) error
	// DeleteOrder removes the order and any of its items that made it in.
	DeleteOrder(ctx context.Context, orderID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// AtomicOrderStore is the capability a backend advertises when it can persist
// an order and all its items as a single transaction. The coordinator prefers
// it over the sequential path.
type AtomicOrderStore interface {
	CreateOrder(ctx context.Context, o domain.Order) error
}
