package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLUnread  = 1 * time.Minute // inbox unread badge, invalidated on writes anyway
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixUnread = "unread:"
	PrefixUser   = "user:"
)

// ErrCacheMiss key not present
var ErrCacheMiss = errors.New("cache miss")

// Service Redis-backed cache used for cheap per-user counters
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	SetUnreadCount(ctx context.Context, userID uint64, count int64) error
	InvalidateUnreadCount(ctx context.Context, userID uint64) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service over an established Redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func unreadKey(userID uint64) string {
	return fmt.Sprintf("%s%d", PrefixUnread, userID)
}

func (c *redisCache) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	count, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, err
	}
	return count, nil
}

func (c *redisCache) SetUnreadCount(ctx context.Context, userID uint64, count int64) error {
	return c.client.Set(ctx, unreadKey(userID), count, TTLUnread).Err()
}

func (c *redisCache) InvalidateUnreadCount(ctx context.Context, userID uint64) error {
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
