package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tokenrepo "lemongrove/internal/repository/token"
)

var ErrInvalidToken = errors.New("invalid session token")

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Service issues opaque tokens that map to a shopper session id.
type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(repo tokenrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tokens: newTokenManager(repo, time.Now, logger),
		ttl:    DefaultTTL,
	}
}

// Issue starts a new session.
func (s *Service) Issue(ctx context.Context) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	token, err = s.tokens.Issue(ctx, sessionID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// Lookup resolves a token to its session id. It returns ErrInvalidToken for
// unknown or expired tokens and the store error otherwise.
func (s *Service) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	meta, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return "", err
	}
	return meta.SessionID, nil
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
