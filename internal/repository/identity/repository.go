package identity

import (
	"context"

	"lemongrove/internal/domain"
)

// KeyPrefix prefixes the per-session identity record key.
const KeyPrefix = "lemon_user:"

// Repository persists the display identity of each session.
type Repository interface {
	// Get returns domain.ErrNotFound when the session is logged out.
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Save(ctx context.Context, sessionID string, id domain.Identity) error
	Clear(ctx context.Context, sessionID string) error
}
