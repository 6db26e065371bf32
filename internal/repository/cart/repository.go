package cart

import (
	"context"

	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

// KeyPrefix prefixes the per-session cart record key.
const KeyPrefix = "lemon_cart:"

// Repository persists one cart per session.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
	Stage(b *snapshot.Batch, c *domain.Cart) error
}
