package cart

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

// NewSnapshot returns a Repository over store.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{store: store, logger: logger}
}

func record(sessionID string) snapshot.Record[[]domain.CartLine] {
	return snapshot.Record[[]domain.CartLine]{
		Key:     KeyPrefix + sessionID,
		Default: func() []domain.CartLine { return []domain.CartLine{} },
	}
}

// Get returns the session's cart. A session that never added anything has an
// empty cart.
func (r *snapshotRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	lines, err := record(sessionID).Load(ctx, r.store)
	if err != nil {
		r.logger.Error("cart repo: load failed", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &domain.Cart{SessionID: sessionID, Lines: lines}, nil
}

func (r *snapshotRepo) Save(ctx context.Context, c *domain.Cart) error {
	if err := record(c.SessionID).Save(ctx, r.store, linesOf(c)); err != nil {
		r.logger.Error("cart repo: save failed", zap.String("session", c.SessionID), zap.Error(err))
		return err
	}
	r.logger.Debug("cart repo: saved", zap.String("session", c.SessionID), zap.Int("lines", len(c.Lines)))
	return nil
}

func (r *snapshotRepo) Stage(b *snapshot.Batch, c *domain.Cart) error {
	return record(c.SessionID).Stage(b, linesOf(c))
}

func linesOf(c *domain.Cart) []domain.CartLine {
	if c.Lines == nil {
		return []domain.CartLine{}
	}
	return c.Lines
}
