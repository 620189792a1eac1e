package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	CatalogCacheTTL   = 10 * time.Minute
	BlocklistCacheTTL = 2 * time.Minute

	catalogKey         = "trustguard:ads:catalog"
	globalBlocklistKey = "trustguard:blocklist:global"
)

// CacheService provides a Redis cache-aside layer for the ad catalog and
// the global blocklist. A nil client turns every operation into a no-op.
type CacheService struct {
	rdb *redis.Client
	log zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64

	// Bumped on every invalidation. A value loaded from the store before
	// an invalidation is not written back.
	catalogGen   atomic.Uint64
	blocklistGen atomic.Uint64
}

// NewCacheService connects to redisURL. If the URL is empty or the
// connection fails, caching is disabled rather than failing startup.
func NewCacheService(redisURL string, log zerolog.Logger) *CacheService {
	log = log.With().Str("component", "cache").Logger()
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{log: log}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		_ = rdb.Close()
		return &CacheService{log: log}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, log: log}
}

// NewCacheServiceWithClient wraps an existing client. rdb may be nil.
func NewCacheServiceWithClient(rdb *redis.Client, log zerolog.Logger) *CacheService {
	return &CacheService{rdb: rdb, log: log}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

// Hits and Misses feed the Prometheus counters.
func (c *CacheService) Hits() uint64 {
	if c == nil {
		return 0
	}
	return c.hits.Load()
}

func (c *CacheService) Misses() uint64 {
	if c == nil {
		return 0
	}
	return c.misses.Load()
}

// getJSON decodes key into dst. found is false on a miss, a disabled
// cache, or an undecodable value.
func (c *CacheService) getJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.misses.Add(1)
		return false, nil
	}
	c.hits.Add(1)
	return true, nil
}

func (c *CacheService) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *CacheService) del(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetCatalog returns the cached catalog; found is false on a miss.
func (c *CacheService) GetCatalog(ctx context.Context, dst any) (bool, error) {
	return c.getJSON(ctx, catalogKey, dst)
}

// CatalogGeneration is read before loading the catalog from the store and
// handed back to SetCatalog.
func (c *CacheService) CatalogGeneration() uint64 {
	if c == nil {
		return 0
	}
	return c.catalogGen.Load()
}

// SetCatalog caches v unless the catalog was invalidated after gen was read.
func (c *CacheService) SetCatalog(ctx context.Context, gen uint64, v any) error {
	if c == nil || c.catalogGen.Load() != gen {
		return nil
	}
	return c.setJSON(ctx, catalogKey, v, CatalogCacheTTL)
}

func (c *CacheService) InvalidateCatalog(ctx context.Context) error {
	if c != nil {
		c.catalogGen.Add(1)
	}
	return c.del(ctx, catalogKey)
}

// GetGlobalBlocklist returns the cached global blocklist; found is false on a miss.
func (c *CacheService) GetGlobalBlocklist(ctx context.Context, dst any) (bool, error) {
	return c.getJSON(ctx, globalBlocklistKey, dst)
}

func (c *CacheService) GlobalBlocklistGeneration() uint64 {
	if c == nil {
		return 0
	}
	return c.blocklistGen.Load()
}

// SetGlobalBlocklist caches v unless a block landed after gen was read.
func (c *CacheService) SetGlobalBlocklist(ctx context.Context, gen uint64, v any) error {
	if c == nil || c.blocklistGen.Load() != gen {
		return nil
	}
	return c.setJSON(ctx, globalBlocklistKey, v, BlocklistCacheTTL)
}

func (c *CacheService) InvalidateGlobalBlocklist(ctx context.Context) error {
	if c != nil {
		c.blocklistGen.Add(1)
	}
	return c.del(ctx, globalBlocklistKey)
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
