// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "gallery:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestQueryKey: keys must vary with every component so distinct views
// never collide, and the version must dominate.
func TestQueryKey(t *testing.T) {
	base := QueryKey(1, "galaxy", "all", "recent")

	variants := []string{
		QueryKey(2, "galaxy", "all", "recent"),
		QueryKey(1, "fox", "all", "recent"),
		QueryKey(1, "galaxy", "abstract", "recent"),
		QueryKey(1, "galaxy", "all", "popular"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key %q", i, base)
		}
	}

	// Search is case-folded: the same logical query shares one entry.
	if QueryKey(1, "GALAXY", "all", "recent") != base {
		t.Error("search term not case-folded in key")
	}
}

func TestGalleryCacheSetGet(t *testing.T) {
	client := testValkeyClient(t)
	gc := NewGalleryCache(client, time.Minute)
	ctx := context.Background()

	key := QueryKey(7, "galaxy", "all", "recent")
	body := []byte(`{"designs":[{"title":"Space Galaxy Swirl"}]}`)

	if _, ok := gc.Get(ctx, key); ok {
		t.Fatal("unexpected cache hit before Set")
	}

	gc.Set(ctx, key, body)

	got, ok := gc.Get(ctx, key)
	if !ok {
		t.Fatal("cache miss after Set")
	}
	if string(got) != string(body) {
		t.Errorf("cached body = %q, want %q", got, body)
	}
}

func TestGalleryCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	gc := NewGalleryCache(client, time.Minute)
	ctx := context.Background()

	for i := uint64(0); i < 5; i++ {
		gc.Set(ctx, QueryKey(i, "", "all", "recent"), []byte("x"))
	}

	gc.InvalidateAll(ctx)

	for i := uint64(0); i < 5; i++ {
		if _, ok := gc.Get(ctx, QueryKey(i, "", "all", "recent")); ok {
			t.Fatalf("key v%d survived InvalidateAll", i)
		}
	}
}

func TestGalleryCacheDefaultTTL(t *testing.T) {
	gc := NewGalleryCache(nil, 0)
	if gc.ttl != DefaultGalleryTTL {
		t.Errorf("ttl = %v, want %v", gc.ttl, DefaultGalleryTTL)
	}
}
