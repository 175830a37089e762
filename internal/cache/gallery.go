// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// gallery.go provides a Valkey-backed cache for serialized gallery query
// responses. The query engine itself is cheap, but caching the encoded
// JSON skips filtering, sorting, and marshalling on repeated views of the
// same query. Keys embed the catalog version, so any engagement mutation
// implicitly expires every cached view.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// galleryKeyPrefix namespaces gallery result keys in Valkey.
	galleryKeyPrefix = "gallery:"

	// DefaultGalleryTTL is how long a cached query result stays live.
	// Version-keyed entries mostly die by going stale, not by TTL; the
	// TTL just keeps dead versions from accumulating.
	DefaultGalleryTTL = 10 * time.Minute
)

// GalleryCache stores serialized gallery responses in Valkey.
type GalleryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGalleryCache creates a gallery cache backed by the given Valkey client.
func NewGalleryCache(client *redis.Client, ttl time.Duration) *GalleryCache {
	if ttl == 0 {
		ttl = DefaultGalleryTTL
	}
	return &GalleryCache{client: client, ttl: ttl}
}

// QueryKey builds the cache key for one gallery view. The key includes
// the catalog version so stale results are never served after a like,
// download, or generation.
func QueryKey(version uint64, search, style, sort string) string {
	return fmt.Sprintf("v%d:%s:%s:q=%s", version, style, sort, strings.ToLower(search))
}

// Get retrieves a cached response body. Returns false on miss.
func (gc *GalleryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := gc.client.Get(ctx, galleryKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("gallery cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("gallery cache hit", "key", key)
	return val, true
}

// Set stores a response body for a query key with the configured TTL.
func (gc *GalleryCache) Set(ctx context.Context, key string, body []byte) {
	if err := gc.client.Set(ctx, galleryKeyPrefix+key, body, gc.ttl).Err(); err != nil {
		slog.Warn("gallery cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached gallery view by scanning the prefix.
// Used when the catalog is reloaded wholesale.
func (gc *GalleryCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := gc.client.Scan(ctx, cursor, galleryKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("gallery cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := gc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("gallery cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("gallery cache fully cleared", "deleted", deleted)
	}
}
