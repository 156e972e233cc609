// Package redis implements the quote.Cache port on a Redis key/value
// store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tournevent/pricing/pkg/quote"
)

// Cache stores JSON-encoded quote results with a TTL.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing client, for tests.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get fetches a cached quote. A missing key is a miss, not an error.
func (c *Cache) Get(ctx context.Context, key string) (*quote.Result, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var result quote.Result
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, false, nil
	}
	return &result, true, nil
}

// SetWithTTL stores a quote result under the key for the given TTL.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value *quote.Result, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
