package repository

import "context"

// CacheRepository is a small durable key-value store.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}
