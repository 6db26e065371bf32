package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	tokenrepo "lemongrove/internal/repository/token"
)

type tokenMeta struct {
	SessionID string
	ExpiresAt time.Time
}

type tokenManager struct {
	repo   tokenrepo.Repository
	now    func() time.Time
	logger *zap.Logger
}

func newTokenManager(repo tokenrepo.Repository, now func() time.Time, logger *zap.Logger) *tokenManager {
	return &tokenManager{
		repo:   repo,
		now:    now,
		logger: logger,
	}
}

func (m *tokenManager) Issue(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	now := m.now()
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = m.repo.Create(ctx, tokenrepo.Token{
			Token:     token,
			SessionID: sessionID,
			ExpiresAt: now.Add(ttl).UTC(),
			CreatedAt: now.UTC(),
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Validate resolves token. Unknown and expired tokens yield ErrInvalidToken;
// store failures are returned as is.
func (m *tokenManager) Validate(ctx context.Context, token string) (tokenMeta, error) {
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return tokenMeta{}, ErrInvalidToken
		}
		return tokenMeta{}, err
	}
	if m.now().After(meta.ExpiresAt) {
		if err := m.repo.Delete(ctx, token); err != nil {
			m.logger.Warn("session: delete expired token failed",
				zap.String("session", meta.SessionID),
				zap.Error(err))
		}
		return tokenMeta{}, ErrInvalidToken
	}
	return tokenMeta{
		SessionID: meta.SessionID,
		ExpiresAt: meta.ExpiresAt,
	}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
