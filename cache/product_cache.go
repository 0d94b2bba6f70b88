package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yashrajoria/atelier-backend/models"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "atelier:products:v:"
	CacheVersionKey        = "atelier:products:version"
	DefaultCacheTTL        = 10 * time.Minute
)

// ProductCache caches public product listings in Redis. Keys embed a version
// number, so bumping the version invalidates every listing at once. A nil
// *ProductCache is a valid cache that never hits.
type ProductCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ProductCache{redis: client, ttl: ttl, logger: logger}
}

// GetList returns the cached listing stored under key, along with the cache
// version it looked at. On a miss, callers pass that version back to SetList
// so a listing loaded before an Invalidate is never stored under the new
// version. A zero version means the cache is unavailable.
func (pc *ProductCache) GetList(ctx context.Context, key string) ([]models.ProductResponse, int64, bool) {
	if pc == nil {
		return nil, 0, false
	}
	version, err := pc.version(ctx)
	if err != nil {
		return nil, 0, false
	}

	data, err := pc.redis.Get(ctx, listKey(version, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			pc.logger.Warn("Product cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, version, false
	}

	var products []models.ProductResponse
	if err := json.Unmarshal(data, &products); err != nil {
		pc.logger.Warn("Failed to unmarshal cached product list", zap.String("key", key), zap.Error(err))
		return nil, version, false
	}
	return products, version, true
}

// SetList stores a listing under key at version, the value GetList returned
// before the listing was loaded.
func (pc *ProductCache) SetList(ctx context.Context, version int64, key string, products []models.ProductResponse) {
	if pc == nil || version == 0 {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		pc.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
		return
	}
	if err := pc.redis.Set(ctx, listKey(version, key), data, pc.ttl).Err(); err != nil {
		pc.logger.Warn("Failed to cache product list", zap.String("key", key), zap.Error(err))
	}
}

// SetListAsync caches a listing without holding up the request.
func (pc *ProductCache) SetListAsync(version int64, key string, products []models.ProductResponse) {
	if pc == nil || version == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pc.SetList(ctx, version, key, products)
	}()
}

// Invalidate bumps the version so every cached listing is ignored.
func (pc *ProductCache) Invalidate(ctx context.Context) error {
	if pc == nil {
		return nil
	}
	newVersion, err := pc.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	pc.logger.Debug("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (pc *ProductCache) version(ctx context.Context) (int64, error) {
	ver, err := pc.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}
	// SetNX keeps a concurrent Invalidate from being overwritten.
	if err := pc.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	return pc.redis.Get(ctx, CacheVersionKey).Int64()
}

func listKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, key)
}

// Listing keys.
const (
	KeyActive   = "active"
	KeyFeatured = "featured"
)

func KeyLatest(limit int) string { return fmt.Sprintf("latest:%d", limit) }
func KeyCategory(categoryID string) string { return "category:" + categoryID }
func KeyGender(gender string) string { return "gender:" + gender }
