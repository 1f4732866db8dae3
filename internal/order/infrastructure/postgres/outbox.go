package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopworks/commerce-backend/internal/store"
	"github.com/shopworks/commerce-backend/pkg/outbox"
)

// OutboxStore serves the relay: it leases pending event rows with
// FOR UPDATE SKIP LOCKED so multiple relay instances never dispatch the same
// event twice within a lease.
type OutboxStore struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOutboxStore(log *slog.Logger, pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{log: log, pool: pool}
}

func (s *OutboxStore) LockBatch(ctx context.Context, relayID string, batchSize int, lease time.Duration) ([]outbox.Event, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %w", store.ErrUnavailable, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, `
		SELECT id, aggregate_type, aggregate_id, type, payload, traceparent, created_at
		FROM outbox
		WHERE status = 'pending'
		   OR (status = 'in_progress' AND lease_until < now())
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT $1
	`, batchSize)
	if err != nil {
		return nil, fmt.Errorf("%w: lock outbox batch: %w", store.ErrUnavailable, err)
	}
	defer rows.Close()

	var events []outbox.Event
	for rows.Next() {
		var ev outbox.Event
		if err := rows.Scan(&ev.ID, &ev.AggregateType, &ev.AggregateID, &ev.Type, &ev.Payload, &ev.Traceparent, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan outbox event: %w", store.ErrUnavailable, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: lock outbox batch: %w", store.ErrUnavailable, err)
	}
	if len(events) == 0 {
		return nil, tx.Commit(ctx)
	}

	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	_, err = tx.Exec(ctx,
		`UPDATE outbox SET status='in_progress', relay_id=$1, lease_until=now() + $2::interval WHERE id = ANY($3)`,
		relayID, lease.String(), ids)
	if err != nil {
		return nil, fmt.Errorf("%w: lease outbox batch: %w", store.ErrUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit outbox lease: %w", store.ErrUnavailable, err)
	}
	return events, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, ids []int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE outbox SET status='sent' WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("%w: mark outbox sent: %w", store.ErrUnavailable, err)
	}
	return nil
}

// MarkFailed requeues the event for a later batch until maxRetries is
// exhausted, after which the row is parked as failed for manual inspection.
func (s *OutboxStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	const maxRetries = 5
	_, err := s.pool.Exec(ctx,
		`UPDATE outbox
		 SET status = CASE WHEN retry_count + 1 >= $3 THEN 'failed' ELSE 'pending' END,
		     last_error = $2,
		     retry_count = retry_count + 1
		 WHERE id = $1`,
		id, errMsg, maxRetries)
	if err != nil {
		return fmt.Errorf("%w: mark outbox failed: %w", store.ErrUnavailable, err)
	}
	return nil
}
