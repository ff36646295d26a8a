package redis

import "context"

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetUser(ctx context.Context, userID string) (*CachedUser, error)
	SetUser(ctx context.Context, user *CachedUser) error
	InvalidateUser(ctx context.Context, userID string) error
}

// Ensure concrete types implement interfaces.
var _ CacheStoreInterface = (*CacheStore)(nil)
