package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/book"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_Blacklist(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	ok, err := store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))
	ok, err = store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, ok)

	// 过期后自动移出黑名单
	mr.FastForward(2 * time.Minute)
	ok, err = store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_BlacklistSkipsExpiredToken(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	require.NoError(t, store.AddToBlacklist(context.Background(), "token-b", 0))
	assert.Empty(t, mr.Keys())
}

func TestSessionStore_SaveAndDelete(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, 7, map[string]interface{}{"ip": "10.0.0.1"}, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("session:7"))

	assert.Equal(t, "10.0.0.1", mr.HGet("session:7", "ip"))

	require.NoError(t, store.DeleteSession(ctx, 7))
	assert.False(t, mr.Exists("session:7"))
}

func TestBookCache_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client, 10*time.Minute, zap.NewNop())
	ctx := context.Background()

	_, hit := cache.Get(ctx, 1)
	assert.False(t, hit)

	b := &book.Book{ID: 1, Title: "Algebra", ISBN: "978-1", Price: decimal.RequireFromString("12.50"), PublisherID: 3, Version: 2}
	cache.Set(ctx, b)
	assert.Equal(t, 10*time.Minute, mr.TTL("book:detail:1"))

	got, hit := cache.Get(ctx, 1)
	require.True(t, hit)
	assert.Equal(t, "Algebra", got.Title)
	assert.True(t, got.Price.Equal(b.Price))
	assert.Equal(t, uint(2), got.Version)

	cache.Invalidate(ctx, 1)
	_, hit = cache.Get(ctx, 1)
	assert.False(t, hit)
}

func TestBookCache_CorruptedValueIsMiss(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client, time.Minute, zap.NewNop())

	require.NoError(t, mr.Set("book:detail:9", "{not json"))
	_, hit := cache.Get(context.Background(), 9)
	assert.False(t, hit)
}

func TestBookCache_RedisDownIsMiss(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client, time.Minute, zap.NewNop())
	mr.Close()

	_, hit := cache.Get(context.Background(), 1)
	assert.False(t, hit)
	// 写入和失效不应panic
	cache.Set(context.Background(), &book.Book{ID: 1})
	cache.Invalidate(context.Background(), 1)
}

func TestFixedWindowLimiter(t *testing.T) {
	_, client := newTestClient(t)
	limiter := NewFixedWindowLimiter(client, "test:login", 2, time.Minute)
	fixed := time.Date(2024, 1, 1, 0, 0, 10, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	// 其他客户端不受影响
	ok, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)

	// 下一个窗口重新计数
	fixed = fixed.Add(time.Minute)
	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowLimiter_FailClosed(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewFixedWindowLimiter(client, "test:login", 5, time.Minute)
	mr.Close()

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, ok)
}
