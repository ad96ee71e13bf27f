// Package cache keeps product detail responses in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"storefront/internal/config"
	"storefront/internal/models"
)

// ProductCache is best-effort: failures are logged and reported as misses.
type ProductCache interface {
	Get(ctx context.Context, id uint) (models.Product, bool)
	Set(ctx context.Context, p models.Product)
	Invalidate(ctx context.Context, id uint)
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, uint) (models.Product, bool) { return models.Product{}, false }
func (Noop) Set(context.Context, models.Product)              {}
func (Noop) Invalidate(context.Context, uint)                 {}

// Client is the part of the go-redis API the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisCache struct {
	client Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and checks the connection with a ping.
func NewRedisClient(conf config.RedisConfig) (*redis.Client, error) {
	if conf.Addr == "" {
		return nil, errors.New("REDIS_ADDR is not set")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisCache(client Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func productKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *RedisCache) Get(ctx context.Context, id uint) (models.Product, bool) {
	var p models.Product
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, false
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "RedisCache.Get").Uint("id", id).Msg("")
		return p, false
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "RedisCache.Get").Uint("id", id).Msg("corrupt cache entry")
		return p, false
	}
	return p, true
}

func (c *RedisCache) Set(ctx context.Context, p models.Product) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(p.ID), raw, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "RedisCache.Set").Uint("id", p.ID).Msg("")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "RedisCache.Invalidate").Uint("id", id).Msg("")
	}
}
