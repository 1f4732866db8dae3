package application

import (
	"context"
	"log/slog"

	"github.com/shopworks/commerce-backend/internal/catalog/domain"
)

type Service struct {
	log      *slog.Logger
	products ProductStore
}

func NewService(log *slog.Logger, products ProductStore) *Service {
	return &Service{log: log, products: products}
}

func (s *Service) CreateProduct(ctx context.Context, name, description string, priceCents int64, stock int) (domain.Product, error) {
	p, err := domain.NewProduct(name, description, priceCents, stock)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return domain.Product{}, err
	}
	s.log.Info("product created", "product_id", p.ID)
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id, name, description string, priceCents int64, stock int) (domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := p.Update(name, description, priceCents, stock); err != nil {
		return domain.Product{}, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}
