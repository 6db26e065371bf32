package order

import (
	"context"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/snapshot"
)

type snapshotRepo struct {
	store  snapshot.Store
	record snapshot.Record[[]domain.Order]
	logger *zap.Logger
}

// NewSnapshot returns a Repository over store.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{
		store: store,
		record: snapshot.Record[[]domain.Order]{
			Key:     Key,
			Default: func() []domain.Order { return []domain.Order{} },
		},
		logger: logger,
	}
}

func (r *snapshotRepo) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.record.Load(ctx, r.store)
	if err != nil {
		r.logger.Error("order repo: list failed", zap.Error(err))
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Find looks an order up by id, ignoring case.
func (r *snapshotRepo) Find(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if domain.SameOrderID(orders[i].ID, id) {
			o := orders[i]
			return &o, nil
		}
	}
	r.logger.Debug("order repo: not found", zap.String("id", id))
	return nil, domain.ErrNotFound
}

func (r *snapshotRepo) SaveAll(ctx context.Context, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	if err := r.record.Save(ctx, r.store, orders); err != nil {
		r.logger.Error("order repo: save failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *snapshotRepo) Stage(b *snapshot.Batch, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	return r.record.Stage(b, orders)
}
