package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key the Redis cache writes.
const DefaultKeyPrefix = "wortlex:"

// scanBatch is the COUNT hint used when walking the key space.
const scanBatch = 100

// RedisCache is a Redis-backed lookup cache. Expiry is delegated to Redis
// key TTLs, so it has no size bound of its own.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379/0")
	KeyPrefix string        // Prefix for all keys (default: "wortlex:")
	Timeout   time.Duration // Per-operation timeout (default: 2s)
}

// NewRedisCache creates a new Redis cache and verifies the connection.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	c := NewRedisCacheFromClient(redis.NewClient(opts), cfg.KeyPrefix)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}

	if err := c.Ping(); err != nil {
		_ = c.client.Close()
		return nil, err
	}

	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	return &RedisCache{
		client:    client,
		keyPrefix: keyPrefix,
		timeout:   2 * time.Second,
	}
}

func (c *RedisCache) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Get retrieves a value from Redis. Errors are reported as misses.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := c.context()
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a value in Redis with ttl as the key expiry.
func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := c.context()
	defer cancel()

	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err()
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear() error {
	ctx, cancel := c.context()
	defer cancel()

	var errs []error
	err := c.scan(ctx, func(keys []string) {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			errs = append(errs, err)
		}
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Len counts the keys under the cache prefix. It returns 0 when Redis is unreachable.
func (c *RedisCache) Len() int {
	ctx, cancel := c.context()
	defer cancel()

	n := 0
	if err := c.scan(ctx, func(keys []string) { n += len(keys) }); err != nil {
		return 0
	}
	return n
}

// scan walks the prefix with SCAN and hands each non-empty page to fn.
func (c *RedisCache) scan(ctx context.Context, fn func(keys []string)) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			fn(keys)
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	ctx, cancel := c.context()
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// Verify RedisCache implements Cache
var _ Cache = (*RedisCache)(nil)
