package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopworks/commerce-backend/internal/order/domain"
)

// Service coordinates order placement: validate, compute the total, persist
// order and items as one logical unit. Placement attempts move through
// validating -> computing -> persisting and end committed or rolled back;
// callers only ever observe the terminal states.
type Service struct {
	log   *slog.Logger
	store OrderStore
}

func NewService(log *slog.Logger, store OrderStore) *Service {
	return &Service{log: log, store: store}
}

// PlaceOrder persists a new order atomically and returns it with its assigned
// id and computed total. Validation failures surface as domain.ErrInvalidOrder
// before anything is written. When the store cannot write atomically, a
// failure after the order row is written triggers a compensating delete and
// domain.ErrPlacementRolledBack.
func (s *Service) PlaceOrder(ctx context.Context, userID string, items []domain.OrderItem) (domain.Order, error) {
	o, err := domain.NewOrder(userID, items)
	if err != nil {
		return domain.Order{}, err
	}

	if atomic, ok := s.store.(AtomicOrderStore); ok {
		if err := atomic.CreateOrder(ctx, o); err != nil {
			return domain.Order{}, err
		}
		s.log.Info("order placed", "order_id", o.ID, "user_id", o.UserID, "total_cents", o.TotalCents)
		return o, nil
	}

	if err := s.store.InsertOrder(ctx, o); err != nil {
		return domain.Order{}, err
	}
	if err := s.store.InsertItems(ctx, o.ID, o.Items); err != nil {
		if delErr := s.store.DeleteOrder(ctx, o.ID); delErr != nil {
			s.log.Error("compensating delete failed, order may be orphaned",
				"order_id", o.ID, "insert_err", err, "delete_err", delErr)
			return domain.Order{}, fmt.Errorf("rollback of order %s failed: %w", o.ID, delErr)
		}
		s.log.Warn("order placement rolled back", "order_id", o.ID, "err", err)
		return domain.Order{}, fmt.Errorf("%w: %v", domain.ErrPlacementRolledBack, err)
	}

	s.log.Info("order placed", "order_id", o.ID, "user_id", o.UserID, "total_cents", o.TotalCents)
	return o, nil
}

// ListOrders returns the orders placed by userID, items included.
func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.store.ListByUser(ctx, userID)
}
