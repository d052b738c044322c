//go:build integration

package ratelimit

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultRedisURL = "redis://localhost:6379/15"

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		redisURL = defaultRedisURL
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse redis URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	if err := rdb.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
	return rdb
}

func TestRedisStoreReserve(t *testing.T) {
	store := NewRedisStoreFromClient(setupRedis(t), time.Hour)
	ctx := context.Background()
	base := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	since := base.Add(-time.Hour)

	for i, id := range []string{"a", "b", "c"} {
		ok, err := store.Reserve(ctx, 1, since, Entry{ID: id, At: base.Add(time.Duration(i) * time.Hour)}, 3)
		if err != nil || !ok {
			t.Fatalf("Reserve %s: expected success, got %v %v", id, ok, err)
		}
	}

	ok, err := store.Reserve(ctx, 1, since, Entry{ID: "d", At: base.Add(3 * time.Hour)}, 3)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if ok {
		t.Error("Expected reserve over the limit to be refused")
	}

	count, err := store.Count(ctx, 1, base)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 entries after pruning, got %d", count)
	}

	if err := store.Release(ctx, 1, "c"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if count, _ := store.Count(ctx, 1, base); count != 1 {
		t.Errorf("Expected 1 entry after release, got %d", count)
	}

	count, err = store.Count(ctx, 2, base)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 entries for unknown requester, got %d", count)
	}
}

func TestRedisStoreWithLimiter(t *testing.T) {
	store := NewRedisStoreFromClient(setupRedis(t), config.SearchQuotaWindow)
	limiter := NewLimiter(store, config.DefaultResilienceConfig.Quota)
	ctx := context.Background()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := limiter.Reserve(ctx, 9); err == nil {
				allowed.Add(1)
			} else if !errors.Is(err, app.ErrRateLimit) {
				t.Errorf("Unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if allowed.Load() != 10 {
		t.Errorf("Expected exactly 10 concurrent reservations, got %d", allowed.Load())
	}
	if _, err := limiter.Reserve(ctx, 9); !errors.Is(err, app.ErrRateLimit) {
		t.Errorf("Expected ErrRateLimit, got %v", err)
	}
}

func TestNewRedisStoreBadURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "not a url", time.Hour); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
