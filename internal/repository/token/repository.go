package token

import (
	"context"
	"time"
)

// KeyPrefix prefixes the per-token session record key.
const KeyPrefix = "lemon_session:"

// Token binds an opaque session token to a session id.
type Token struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
