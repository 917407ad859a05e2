package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	priceCacheKeyPrefix = "price:"
	priceCacheTTL       = 4 * time.Hour
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(redisURL string, log zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().Msg("redis ready")
	return client, nil
}

// PriceCache caches the public price lookup payloads under "price:<code>"
// and satisfies service.PriceCache for bulk invalidation after recomputes.
type PriceCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPriceCache(client *redis.Client, log zerolog.Logger) *PriceCache {
	return &PriceCache{
		client: client,
		log:    log.With().Str("component", "price_cache").Logger(),
	}
}

func (c *PriceCache) Get(ctx context.Context, code int64) (string, bool) {
	val, err := c.client.Get(ctx, fmt.Sprintf("%s%d", priceCacheKeyPrefix, code)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *PriceCache) Set(ctx context.Context, code int64, payload string) {
	key := fmt.Sprintf("%s%d", priceCacheKeyPrefix, code)
	if err := c.client.Set(ctx, key, payload, priceCacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to cache price payload")
	}
}

// InvalidateAll removes every cached price entry. Called after a catalog
// recompute so clients never read stale vectors.
func (c *PriceCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, priceCacheKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
