package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lanternclub/membergate/pkg/logger"
)

const cacheKeyPrefix = "content:slug:"

// CacheConfig configures the read-through content cache.
type CacheConfig struct {
	TTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"10m"`
}

// CachedRepository wraps a Repository with a Redis read-through cache.
// Cache failures degrade to the upstream repository; a broken cache must
// never make content unreadable.
type CachedRepository struct {
	upstream Repository
	client   redis.UniversalClient
	ttl      time.Duration
	log      *slog.Logger
}

func NewCachedRepository(upstream Repository, client redis.UniversalClient, cfg CacheConfig, log *slog.Logger) *CachedRepository {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CachedRepository{
		upstream: upstream,
		client:   client,
		ttl:      cfg.TTL,
		log:      log,
	}
}

func (c *CachedRepository) GetBySlug(ctx context.Context, slug string) (*Item, error) {
	if slug == "" {
		return nil, ErrMissingSlug
	}

	key := cacheKeyPrefix + slug

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var item Item
		if err := json.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
		// Corrupt entry: drop it and fall through to the upstream.
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "content cache read failed", logger.Error(err))
	}

	item, err := c.upstream.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(item); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "content cache write failed", logger.Error(err))
		}
	}

	return item, nil
}
