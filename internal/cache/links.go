// internal/cache/links.go
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when no link is cached for a page.
var ErrMiss = errors.New("cache miss")

// LinkCache stores pageID → generated file link with a TTL, so duplicate
// webhook deliveries for the same page reuse the existing document instead
// of regenerating it.
type LinkCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLinkCache(client *redis.Client, ttl time.Duration) *LinkCache {
	return &LinkCache{client: client, ttl: ttl}
}

func key(pageID string) string {
	return "pdf:link:" + pageID
}

func (c *LinkCache) Get(ctx context.Context, pageID string) (string, error) {
	val, err := c.client.Get(ctx, key(pageID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (c *LinkCache) Set(ctx context.Context, pageID, link string) error {
	return c.client.Set(ctx, key(pageID), link, c.ttl).Err()
}
