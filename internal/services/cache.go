package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached upstream responses
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL keeps catalog listings fresh enough for a browse page
	DefaultCacheTTL = 6 * time.Hour
)

// CacheService is a thin JSON cache over Redis for upstream responses.
// A nil CacheService is valid and caches nothing, so callers never branch.
type CacheService struct {
	Client *redis.Client
}

// Get retrieves a cached value into dest. A miss is (false, nil), not an error.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil || c.Client == nil {
		return false, nil
	}

	val, err := c.Client.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // miss or redis outage; caller falls through to upstream
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.Client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, CacheKeyPrefix+key, data, ttl).Err()
}

// Delete removes a cached value.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, CacheKeyPrefix+key).Err()
}
