// Package rdx wraps the Redis client used as a read-through cache for
// catalog detail lookups. Cache misses and redis failures fall back to the
// store; invalidation happens on admin writes.
package rdx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	conn *redis.Client
}

func New(url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Cache{conn: redis.NewClient(opts)}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("redis get error:", err)
		}
		return "", false
	}
	return v, true
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.conn.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Println("redis set error:", err)
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if err := c.conn.Del(ctx, keys...).Err(); err != nil {
		log.Println("redis del error:", err)
	}
}

func (c *Cache) Close() error {
	return c.conn.Close()
}
