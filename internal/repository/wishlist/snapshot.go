package wishlist

import (
	"context"

	"go.uber.org/zap"
	"lemongrove/internal/snapshot"
)

type snapshotRepo struct {
	store  snapshot.Store
	logger *zap.Logger
}

// NewSnapshot returns a Repository over store.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{store: store, logger: logger}
}

func record(sessionID string) snapshot.Record[[]int] {
	return snapshot.Record[[]int]{
		Key:     KeyPrefix + sessionID,
		Default: func() []int { return []int{} },
	}
}

func (r *snapshotRepo) Get(ctx context.Context, sessionID string) ([]int, error) {
	ids, err := record(sessionID).Load(ctx, r.store)
	if err != nil {
		r.logger.Error("wishlist repo: load failed", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func (r *snapshotRepo) Save(ctx context.Context, sessionID string, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	if err := record(sessionID).Save(ctx, r.store, ids); err != nil {
		r.logger.Error("wishlist repo: save failed", zap.String("session", sessionID), zap.Error(err))
		return err
	}
	return nil
}
