package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
)

type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates the catalog fields and assigns identity and timestamps.
func NewProduct(name, description string, priceCents int64, stock int) (Product, error) {
	if err := validate(name, priceCents, stock); err != nil {
		return Product{}, err
	}
	now := time.Now().UTC()
	return Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies new field values, keeping identity and creation time.
func (p *Product) Update(name, description string, priceCents int64, stock int) error {
	if err := validate(name, priceCents, stock); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.PriceCents = priceCents
	p.Stock = stock
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func validate(name string, priceCents int64, stock int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if priceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}
