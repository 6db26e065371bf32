package identity

import (
	"context"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

type snapshotRepo struct {
	store  snapshot.Store
	logger *zap.Logger
}

// NewSnapshot returns a Repository over store. A logged out session is stored
// as JSON null.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{store: store, logger: logger}
}

func record(sessionID string) snapshot.Record[*domain.Identity] {
	return snapshot.Record[*domain.Identity]{Key: KeyPrefix + sessionID}
}

func (r *snapshotRepo) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	id, err := record(sessionID).Load(ctx, r.store)
	if err != nil {
		r.logger.Error("identity repo: load failed", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrNotFound
	}
	return id, nil
}

func (r *snapshotRepo) Save(ctx context.Context, sessionID string, id domain.Identity) error {
	if err := record(sessionID).Save(ctx, r.store, &id); err != nil {
		r.logger.Error("identity repo: save failed", zap.String("session", sessionID), zap.Error(err))
		return err
	}
	r.logger.Info("identity repo: logged in", zap.String("session", sessionID), zap.String("user", id.ID))
	return nil
}

func (r *snapshotRepo) Clear(ctx context.Context, sessionID string) error {
	if err := record(sessionID).Save(ctx, r.store, nil); err != nil {
		r.logger.Error("identity repo: clear failed", zap.String("session", sessionID), zap.Error(err))
		return err
	}
	return nil
}
