package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key the cache writes.
const KeyPrefix = "pathfinder:run:"

// RedisRunCache keeps solved runs in Redis with a TTL and serializes solves through redsync.
type RedisRunCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	logger i.Logger
}

// NewRedisRunCache initializes a RedisRunCache with the provided Redis client and TTL.
// A non-positive ttl keeps entries until Redis evicts them.
func NewRedisRunCache(client *redis.Client, ttl time.Duration, logger i.Logger) (*RedisRunCache, error) {
	if client == nil {
		return nil, errors.New("cache: nil redis client")
	}

	c := &RedisRunCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c, nil
}

// Fetch implements i.RunCache.
func (c *RedisRunCache) Fetch(ctx context.Context, key string) (*dmn.Run, error) {
	raw, err := c.client.Get(ctx, runKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}

	var run dmn.Run
	if err := json.Unmarshal(raw, &run); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &run, nil
}

// Store implements i.RunCache.
func (c *RedisRunCache) Store(ctx context.Context, key string, run *dmn.Run) error {
	raw, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, runKey(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Lock implements i.RunCache. The returned function releases the lock.
func (c *RedisRunCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(lockKey(key))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("cache: lock %s: %w", key, err)
	}

	return func() {
		ok, err := mutex.Unlock()
		if err != nil {
			c.warn(fmt.Sprintf("error while releasing solve lock %s: %s", key, err))
			return
		}
		if !ok {
			c.warn(fmt.Sprintf("error while releasing solve lock %s: %s", key, "redis eval func returned 0 while releasing"))
		}
	}, nil
}

func (c *RedisRunCache) warn(msg string) {
	if c.logger != nil {
		c.logger.Warning(msg)
	}
}

func runKey(key string) string {
	return KeyPrefix + key
}

func lockKey(key string) string {
	return runKey(key) + ":solve_lock"
}
