package main

import (
	"context"
	"errors"
	"flag"

	"go.uber.org/zap"
	"lemongrove/internal/app"
	"lemongrove/internal/config"
	"lemongrove/internal/logging"
	"lemongrove/internal/repository/product"
	"lemongrove/internal/seed"
)

func main() {
	var force bool
	flag.BoolVar(&force, "force", false, "Overwrite an existing catalog")
	flag.Parse()

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, "seed")
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	if err := seed.Apply(ctx, product.NewSnapshot(store, logger), force); err != nil {
		if errors.Is(err, seed.ErrCatalogPresent) {
			logger.Warn("catalog already present; rerun with -force to overwrite")
			return
		}
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied", zap.Int("products", len(seed.Products())))
}
