package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/validation"
)

type identityRepo interface {
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Save(ctx context.Context, sessionID string, id domain.Identity) error
	Clear(ctx context.Context, sessionID string) error
}

// Service manages the display identity of a session. Passwords are accepted
// but never checked or stored.
type Service struct {
	repo   identityRepo
	logger *zap.Logger
	now    func() time.Time
}

func New(repo identityRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

func (s *Service) Login(ctx context.Context, sessionID string, in LoginInput) (*domain.Identity, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.signIn(ctx, sessionID, "", in.Email)
}

func (s *Service) Register(ctx context.Context, sessionID string, in RegisterInput) (*domain.Identity, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.signIn(ctx, sessionID, in.Name, in.Email)
}

func (s *Service) signIn(ctx context.Context, sessionID, name, email string) (*domain.Identity, error) {
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	now := s.now()
	id := domain.Identity{
		ID:         fmt.Sprintf("U%d", now.UnixMilli()),
		Name:       name,
		Email:      email,
		LoggedInAt: now.UTC(),
	}
	if err := s.repo.Save(ctx, sessionID, id); err != nil {
		return nil, err
	}
	s.logger.Info("identity: signed in", zap.String("session", sessionID), zap.String("user", id.ID))
	return &id, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.repo.Clear(ctx, sessionID)
}

// Current returns the session's identity or domain.ErrNotFound.
func (s *Service) Current(ctx context.Context, sessionID string) (*domain.Identity, error) {
	return s.repo.Get(ctx, sessionID)
}
