package wishlist

import "context"

// KeyPrefix prefixes the per-session wishlist record key.
const KeyPrefix = "lemon_wishlist:"

// Repository persists the wishlisted product ids of each session.
type Repository interface {
	Get(ctx context.Context, sessionID string) ([]int, error)
	Save(ctx context.Context, sessionID string, ids []int) error
}
