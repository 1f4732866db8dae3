package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopworks/commerce-backend/internal/catalog/domain"
	"github.com/shopworks/commerce-backend/internal/store"
)

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	PriceCents  int64     `bson:"price_cents"`
	Stock       int       `bson:"stock"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toDoc(p domain.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		PriceCents:  d.PriceCents,
		Stock:       d.Stock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type Repository struct {
	products *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{products: db.Collection("products")}
}

func (r *Repository) Insert(ctx context.Context, p domain.Product) error {
	if _, err := r.products.InsertOne(ctx, toDoc(p)); err != nil {
		return fmt.Errorf("%w: insert product: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, p domain.Product) error {
	res, err := r.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, toDoc(p))
	if err != nil {
		return fmt.Errorf("%w: update product: %w", store.ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete product: %w", store.ErrUnavailable, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	var doc productDoc
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: find product: %w", store.ErrUnavailable, err)
	}
	return doc.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", store.ErrUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: list products: %w", store.ErrUnavailable, err)
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
