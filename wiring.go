package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"loan-calculator/config"
	"loan-calculator/repository"
	"loan-calculator/service"
)

// openSelections connects the configured backend. The returned func releases it.
func openSelections(ctx context.Context, sc config.StorageConfig) (repository.LoanSelectionRepository, func() error, error) {
	switch sc.Backend {
	case config.BackendMemory:
		return repository.NewSelectionStore(repository.NewMemoryCache()), func() error { return nil }, nil

	case config.BackendSQLite:
		cache, err := repository.OpenSQLiteCache(ctx, sc.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSelectionStore(cache), cache.Close, nil

	case config.BackendRedis:
		cache := repository.NewRedisCache(repository.RedisOptions{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", sc.RedisAddr, err)
		}
		return repository.NewSelectionStore(cache), cache.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", sc.Backend)
}

// newStore builds the store with its repository and submission gateway.
// The returned func closes the store, then the repository.
func newStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*service.Store, func(), error) {
	selections, release, err := openSelections(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	gateway := service.NewHTTPSubmissionGateway(cfg.SubmitURL, nil)
	store := service.NewStore(ctx, selections, gateway, logger,
		service.WithDismissDelay(cfg.DismissDelay),
	)

	cleanup := func() {
		store.Close()
		if err := release(); err != nil {
			logger.Warn("failed to close loan selection store", zap.Error(err))
		}
	}
	return store, cleanup, nil
}
