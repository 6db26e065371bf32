package order

import (
	"context"

	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

// Key names the order ledger record.
const Key = "lemon_orders"

// Repository persists the order ledger, newest order first.
type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Find(ctx context.Context, id string) (*domain.Order, error)
	SaveAll(ctx context.Context, orders []domain.Order) error
	Stage(b *snapshot.Batch, orders []domain.Order) error
}
