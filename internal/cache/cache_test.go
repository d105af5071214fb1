package cache_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-webpages/internal/cache"
	"github.com/atinyakov/go-webpages/internal/models"
)

func TestNoOpCache(t *testing.T) {
	var c cache.Cache = cache.NoOpCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, models.Webpage{ID: 1}))
	_, err := c.Get(ctx, 1)
	require.ErrorIs(t, err, cache.ErrMiss)
	require.NoError(t, c.Delete(ctx, 1, 2))
	require.NoError(t, c.Close())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "webpage:42", cache.Key(42))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err = cache.NewRedisCache(ctx, addr, time.Minute)
	assert.Error(t, err)
}

func newRedisCache(t *testing.T, ttl time.Duration) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisCache(context.Background(), mr.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	w := models.Webpage{
		ID:          7,
		URL:         "https://go.dev",
		Title:       "Go",
		Description: "The Go programming language",
		CreatedAt:   time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, w))
	assert.True(t, mr.Exists("webpage:7"))

	got, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newRedisCache(t, time.Minute)

	_, err := c.Get(context.Background(), 404)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, models.Webpage{ID: 1, URL: "https://a.com"}))
	assert.Equal(t, time.Minute, mr.TTL("webpage:1"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Get(ctx, 1)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, c.Set(ctx, models.Webpage{ID: id, URL: "https://a.com"}))
	}
	require.NoError(t, c.Delete(ctx))
	require.NoError(t, c.Delete(ctx, 1, 3, 99))

	assert.False(t, mr.Exists("webpage:1"))
	assert.True(t, mr.Exists("webpage:2"))
	assert.False(t, mr.Exists("webpage:3"))
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	require.NoError(t, mr.Set("webpage:5", "{not json"))

	_, err := c.Get(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrMiss)
}
