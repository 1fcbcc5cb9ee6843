package cache

import (
	"context"
	"fmt"
	"time"

	"academy-api/core/config"
	"academy-api/core/constants"
	"academy-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the redis-backed acceleration layer. Aggregated calendar windows
// are stored as opaque JSON blobs; entries are write-once and expire on TTL.
type Cache interface {
	GetWindow(ctx context.Context, key string) ([]byte, bool, error)
	SetWindow(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	InvalidateUser(ctx context.Context, userKeyPrefix string) error

	// Active-user tracking feeds the warm-up worker.
	MarkUserActive(ctx context.Context, userID, tenantID string) error
	ActiveUsers(ctx context.Context, since time.Duration) ([]string, error)

	Close() error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) GetWindow(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyCalendarWindow+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *redisCache) SetWindow(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, constants.RedisKeyCalendarWindow+key, payload, ttl).Err()
}

func (c *redisCache) InvalidateUser(ctx context.Context, userKeyPrefix string) error {
	iter := c.client.Scan(ctx, 0, constants.RedisKeyCalendarWindow+userKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) MarkUserActive(ctx context.Context, userID, tenantID string) error {
	member := tenantID + ":" + userID
	return c.client.ZAdd(ctx, constants.RedisKeyActiveUsers, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: member,
	}).Err()
}

// ActiveUsers returns "tenantID:userID" members seen within the given window.
func (c *redisCache) ActiveUsers(ctx context.Context, since time.Duration) ([]string, error) {
	min := fmt.Sprintf("%d", time.Now().Add(-since).Unix())
	return c.client.ZRangeByScore(ctx, constants.RedisKeyActiveUsers, &redis.ZRangeBy{
		Min: min,
		Max: "+inf",
	}).Result()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
