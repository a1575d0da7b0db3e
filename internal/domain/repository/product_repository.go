package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve el catálogo completo en orden de creación.
	List(ctx context.Context) ([]entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]entity.Product, error)
	Delete(ctx context.Context, id string) error
}
