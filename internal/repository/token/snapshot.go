package token

import (
	"context"
	"time"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

type snapshotRepo struct {
	store  snapshot.Store
	logger *zap.Logger
}

// NewSnapshot returns a Repository over store. A deleted token is stored as
// JSON null since snapshot records are never removed.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{store: store, logger: logger}
}

func record(token string) snapshot.Record[*Token] {
	return snapshot.Record[*Token]{Key: KeyPrefix + token}
}

func (r *snapshotRepo) Create(ctx context.Context, t Token) error {
	existing, err := record(t.Token).Load(ctx, r.store)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyExists
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := record(t.Token).Save(ctx, r.store, &t); err != nil {
		r.logger.Error("token repo: create failed", zap.String("session", t.SessionID), zap.Error(err))
		return err
	}
	return nil
}

func (r *snapshotRepo) Get(ctx context.Context, token string) (*Token, error) {
	t, err := record(token).Load(ctx, r.store)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, token string) error {
	return record(token).Save(ctx, r.store, nil)
}
