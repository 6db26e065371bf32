package product

import (
	"context"

	"go.uber.org/zap"
	"lemongrove/internal/domain"
	"lemongrove/internal/seed"
	"lemongrove/internal/snapshot"
)

type snapshotRepo struct {
	store  snapshot.Store
	record snapshot.Record[[]domain.Product]
	logger *zap.Logger
}

// NewSnapshot returns a Repository over store. An absent record reads as the
// seed catalog.
func NewSnapshot(store snapshot.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotRepo{
		store:  store,
		record: snapshot.Record[[]domain.Product]{Key: Key, Default: seed.Products},
		logger: logger,
	}
}

func (r *snapshotRepo) List(ctx context.Context) ([]domain.Product, error) {
	products, err := r.record.Load(ctx, r.store)
	if err != nil {
		r.logger.Error("product repo: list failed", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(products)))
	return products, nil
}

func (r *snapshotRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := domain.FindProduct(products, id)
	if idx < 0 {
		r.logger.Debug("product repo: not found", zap.Int("id", id))
		return nil, domain.ErrNotFound
	}
	p := products[idx]
	return &p, nil
}

func (r *snapshotRepo) SaveAll(ctx context.Context, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	if err := r.record.Save(ctx, r.store, products); err != nil {
		r.logger.Error("product repo: save failed", zap.Error(err))
		return err
	}
	r.logger.Debug("product repo: saved", zap.Int("count", len(products)))
	return nil
}

func (r *snapshotRepo) Stage(b *snapshot.Batch, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return r.record.Stage(b, products)
}

func (r *snapshotRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if idx := domain.FindProduct(products, p.ID); idx >= 0 {
		products[idx] = p
	} else {
		products = append(products, p)
	}
	if err := r.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	r.logger.Info("product repo: upserted", zap.Int("id", p.ID), zap.String("name", p.Name))
	return &p, nil
}

func (r *snapshotRepo) Stored(ctx context.Context) (bool, error) {
	return r.record.Exists(ctx, r.store)
}
