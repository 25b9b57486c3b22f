package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create asigna ID y fecha. Slug duplicado -> domain.ErrConflict.
	Create(ctx context.Context, product *entity.Product) error
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
}
