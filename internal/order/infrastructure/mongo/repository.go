package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopworks/commerce-backend/internal/order/domain"
	"github.com/shopworks/commerce-backend/internal/store"
)

const (
	ordersCollection = "orders"
	itemsCollection  = "order_items"
)

// Repository persists orders in MongoDB. It deliberately does NOT implement
// the atomic capability: standalone Mongo deployments have no multi-document
// transactions, so the coordinator drives the sequential insert path and
// falls back on DeleteOrder as compensating rollback.
type Repository struct {
	log *slog.Logger
	db  *mongo.Database
}

func NewRepository(log *slog.Logger, db *mongo.Database) *Repository {
	return &Repository{log: log, db: db}
}

type orderDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	TotalCents int64     `bson:"total_cents"`
	CreatedAt  time.Time `bson:"created_at"`
}

type itemDoc struct {
	OrderID        string `bson:"order_id"`
	ProductID      string `bson:"product_id"`
	Quantity       int    `bson:"quantity"`
	UnitPriceCents int64  `bson:"unit_price_cents"`
}

func (r *Repository) InsertOrder(ctx context.Context, o domain.Order) error {
	doc := orderDoc{
		ID:         o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
	}
	if _, err := r.db.Collection(ordersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert order: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) InsertItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	docs := make([]any, 0, len(items))
	for _, item := range items {
		docs = append(docs, itemDoc{
			OrderID:        orderID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	if _, err := r.db.Collection(itemsCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%w: insert order items: %w", store.ErrUnavailable, err)
	}
	return nil
}

// DeleteOrder removes the order and every item that may have been written
// before a failure. Items go first so a crash between the two deletes cannot
// leave items pointing at a missing order unobserved.
func (r *Repository) DeleteOrder(ctx context.Context, orderID string) error {
	if _, err := r.db.Collection(itemsCollection).DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("%w: delete order items: %w", store.ErrUnavailable, err)
	}
	if _, err := r.db.Collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
		return fmt.Errorf("%w: delete order: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.db.Collection(ordersCollection).Find(ctx, bson.M{"user_id": userID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", store.ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	index := make(map[string]int)
	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode order: %w", store.ErrUnavailable, err)
		}
		index[doc.ID] = len(orders)
		ids = append(ids, doc.ID)
		orders = append(orders, domain.Order{
			ID:         doc.ID,
			UserID:     doc.UserID,
			TotalCents: doc.TotalCents,
			CreatedAt:  doc.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", store.ErrUnavailable, err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemCur, err := r.db.Collection(itemsCollection).Find(ctx, bson.M{"order_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("%w: list order items: %w", store.ErrUnavailable, err)
	}
	defer itemCur.Close(ctx)

	for itemCur.Next(ctx) {
		var doc itemDoc
		if err := itemCur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode order item: %w", store.ErrUnavailable, err)
		}
		if i, ok := index[doc.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, domain.OrderItem{
				ProductID:      doc.ProductID,
				Quantity:       doc.Quantity,
				UnitPriceCents: doc.UnitPriceCents,
			})
		}
	}
	if err := itemCur.Err(); err != nil {
		return nil, fmt.Errorf("%w: list order items: %w", store.ErrUnavailable, err)
	}
	return orders, nil
}
