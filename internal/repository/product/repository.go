package product

import (
	"context"

	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

// Key names the catalog snapshot record.
const Key = "lemon_products"

// Repository persists the catalog as a single snapshot record.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) error
	Stage(b *snapshot.Batch, products []domain.Product) error
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Stored(ctx context.Context) (bool, error)
}
