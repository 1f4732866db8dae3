package application

import (
	"context"

	"github.com/shopworks/commerce-backend/internal/catalog/domain"
)

// ProductStore is the persistence port for the catalog.
type ProductStore interface {
	Insert(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
