package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized item read model stored in Redis, serving the
// dashboard's item detail reads. Lifecycle mutations invalidate the key; the
// worker re-warms it from published events.
type CachedItem struct {
	ID              uuid.UUID `json:"id"`
	Kind            string    `json:"kind"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	StorageLocation string    `json:"storage_location"`
	ReportedAt      time.Time `json:"reported_at"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	key := c.key(itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	reportedAt, err := time.Parse(time.RFC3339Nano, vals["reported_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse reported_at: %w", err)
	}

	return &CachedItem{
		ID:              id,
		Kind:            vals["kind"],
		Category:        vals["category"],
		Description:     vals["description"],
		Location:        vals["location"],
		Status:          vals["status"],
		StorageLocation: vals["storage_location"],
		ReportedAt:      reportedAt,
	}, nil
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"kind", item.Kind,
		"category", item.Category,
		"description", item.Description,
		"location", item.Location,
		"status", item.Status,
		"storage_location", item.StorageLocation,
		"reported_at", item.ReportedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Called on every lifecycle mutation so a stale
// status never serves a read.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}
