package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nilecart/storefront_api/internal/models"
)

// catalogTTL bounds staleness even if an invalidation is missed.
const catalogTTL = 5 * time.Minute

// CatalogPage is a cached public product listing page.
type CatalogPage struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
}

// CatalogCache caches public product listings in Redis. Keys embed a version
// counter; bumping the counter on any catalog write orphans every cached page
// at once, and the TTL reclaims the orphans.
type CatalogCache struct {
	redis *RedisClient
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient) *CatalogCache {
	return &CatalogCache{redis: redis}
}

func (c *CatalogCache) version(ctx context.Context) string {
	v, err := c.redis.Get(ctx, "catalog:version")
	if err != nil {
		return "0"
	}
	return v
}

func (c *CatalogCache) key(ctx context.Context, category, search string, page, limit int) string {
	return fmt.Sprintf("catalog:v%s:list:%s:%s:%d:%d", c.version(ctx), category, search, page, limit)
}

// GetListing returns a cached listing page, or (nil, nil) on a miss.
func (c *CatalogCache) GetListing(ctx context.Context, category, search string, page, limit int) (*CatalogPage, error) {
	raw, err := c.redis.Get(ctx, c.key(ctx, category, search, page, limit))
	if err != nil {
		if IsMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	var cached CatalogPage
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// SetListing stores a listing page under the current catalog version.
func (c *CatalogCache) SetListing(ctx context.Context, category, search string, page, limit int, pageData *CatalogPage) error {
	raw, err := json.Marshal(pageData)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.key(ctx, category, search, page, limit), string(raw), catalogTTL)
}

// Invalidate bumps the catalog version so all cached pages become unreachable.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	_, err := c.redis.Incr(ctx, "catalog:version")
	return err
}
