package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopworks/commerce-backend/internal/order/domain"
	"github.com/shopworks/commerce-backend/internal/store"
	"github.com/shopworks/commerce-backend/pkg/tracing"
)

// Repository persists orders in PostgreSQL. It advertises the atomic
// capability: CreateOrder writes the order, its items and an OrderPlaced
// outbox row in a single transaction, so readers can never observe an order
// with a subset of its items.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) CreateOrder(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", store.ErrUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, total_cents, created_at) VALUES ($1,$2,$3,$4)`,
		o.ID, o.UserID, o.TotalCents, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert order: %w", store.ErrUnavailable, err)
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents) VALUES ($1,$2,$3,$4)`,
			o.ID, item.ProductID, item.Quantity, item.UnitPriceCents)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%w: insert order items: %w", store.ErrUnavailable, err)
	}

	payload, err := json.Marshal(domain.NewOrderPlaced(o))
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		 VALUES ($1,$2,$3,$4,$5,'pending')`,
		"order", o.ID, domain.EventOrderPlaced, payload, tracing.Traceparent(ctx))
	if err != nil {
		return fmt.Errorf("%w: insert outbox row: %w", store.ErrUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit order: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) InsertOrder(ctx context.Context, o domain.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, user_id, total_cents, created_at) VALUES ($1,$2,$3,$4)`,
		o.ID, o.UserID, o.TotalCents, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert order: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) InsertItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents) VALUES ($1,$2,$3,$4)`,
			orderID, item.ProductID, item.Quantity, item.UnitPriceCents)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%w: insert order items: %w", store.ErrUnavailable, err)
	}
	return nil
}

// DeleteOrder removes the order row; order_items go with it via the
// ON DELETE CASCADE constraint.
func (r *Repository) DeleteOrder(ctx context.Context, orderID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, orderID)
	if err != nil {
		return fmt.Errorf("%w: delete order: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, total_cents, created_at FROM orders WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", store.ErrUnavailable, err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan order: %w", store.ErrUnavailable, err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", store.ErrUnavailable, err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.pool.Query(ctx,
		`SELECT order_id, product_id, quantity, unit_price_cents FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: list order items: %w", store.ErrUnavailable, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("%w: scan order item: %w", store.ErrUnavailable, err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list order items: %w", store.ErrUnavailable, err)
	}
	return orders, nil
}
