package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"lemongrove/internal/config"
	"lemongrove/internal/db"
	"lemongrove/internal/snapshot"
)

// OpenStore opens the snapshot backend named by cfg.StoreDriver. The returned
// close func is always non-nil.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (snapshot.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on exit")
		return snapshot.NewMemory(), func() {}, nil
	case "postgres", "":
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect db: %w", err)
		}
		return snapshot.NewPostgres(pool, logger.Named("snapshot")), pool.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
