package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// UserCacheTTL can be generous: profiles only change on registration.
	UserCacheTTL = 5 * time.Minute
)

// Key prefixes
const (
	userCachePrefix = "cache:user:"
)

// CachedUser represents a cached user entity.
type CachedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetUser retrieves a user from cache. A nil result with nil error is a
// cache miss.
func (s *CacheStore) GetUser(ctx context.Context, userID string) (*CachedUser, error) {
	key := userCachePrefix + userID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var user CachedUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUser stores a user in cache.
func (s *CacheStore) SetUser(ctx context.Context, user *CachedUser) error {
	key := userCachePrefix + user.ID
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, UserCacheTTL).Err()
}

// InvalidateUser removes a user from cache.
func (s *CacheStore) InvalidateUser(ctx context.Context, userID string) error {
	key := userCachePrefix + userID
	return s.client.Del(ctx, key).Err()
}
