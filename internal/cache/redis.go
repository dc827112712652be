package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/platefull/recommendation-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func bundleKey(userID int64) string {
	return fmt.Sprintf("rec:user:%d:bundle", userID)
}

// GetBundle returns the cached personalized bundle for a user, if any.
func (c *Cache) GetBundle(ctx context.Context, userID int64) (*domain.RecommendationBundle, bool, error) {
	key := bundleKey(userID)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get bundle from cache: %w", err)
	}

	var bundle domain.RecommendationBundle
	if err := json.Unmarshal([]byte(val), &bundle); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached bundle %s: %w", key, err)
	}

	return &bundle, true, nil
}

// SetBundle stores a personalized bundle with the configured TTL.
func (c *Cache) SetBundle(ctx context.Context, userID int64, bundle *domain.RecommendationBundle) error {
	key := bundleKey(userID)
	val, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set bundle in cache: %w", err)
	}

	return nil
}

// ClearUserCache drops every cached entry for a user: called when the
// user's preference profile changes.
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
